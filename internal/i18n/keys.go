// Package i18n provides internationalization support for the engraving service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"

	// ErrKeySessionNotFound indicates an unknown or expired editor session.
	ErrKeySessionNotFound = "error.session_not_found"
	// ErrKeyUnknownProduct indicates an unknown product or variation.
	ErrKeyUnknownProduct = "error.unknown_product"
	// ErrKeyInvalidUpload indicates an invalid image upload payload.
	ErrKeyInvalidUpload = "error.invalid_upload"
	// ErrKeyPricingUnavailable indicates the image pricing service failed.
	ErrKeyPricingUnavailable = "error.pricing_unavailable"
	// ErrKeyPricingInFlight indicates a conflicting in-flight pricing request.
	ErrKeyPricingInFlight = "error.pricing_in_flight"
	// ErrKeyEmptyDesign indicates checkout on a design with no content.
	ErrKeyEmptyDesign = "error.empty_design"
	// ErrKeyCartUnavailable indicates the cart service failed.
	ErrKeyCartUnavailable = "error.cart_unavailable"
	// ErrKeyInvalidTiers indicates an invalid price tier table.
	ErrKeyInvalidTiers = "error.invalid_tiers"
	// ErrKeyGenerativeUnavailable indicates the generative service failed.
	ErrKeyGenerativeUnavailable = "error.generative_unavailable"
)

// Warning message translation keys.
const (
	// WarnKeyCharacterLimit indicates the character count passed the top tier.
	WarnKeyCharacterLimit = "warning.character_limit"
)

// Success message translation keys.
const (
	// SuccessKeyCheckedOut indicates a successful checkout.
	SuccessKeyCheckedOut = "success.checked_out"
)

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/engraving-service/internal/canvas"
	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/metrics"
)

var (
	// ErrSessionNotFound is returned when no editor session has the given id.
	ErrSessionNotFound = errors.New("editor session not found")
	// ErrPricingInFlight is returned when an image pricing request is in
	// flight and a conflicting operation (another insert, checkout) arrives.
	ErrPricingInFlight = errors.New("image pricing request in flight")
	// ErrPricingUnavailable is returned when the external pricing service
	// rejects or fails a pricing request. No object is inserted.
	ErrPricingUnavailable = errors.New("image pricing unavailable")
)

// sessionMode is the editor session's restore state machine. While
// restoring, history recording is suppressed so that applying a snapshot is
// never itself recorded as an edit.
type sessionMode int

const (
	modeIdle sessionMode = iota
	modeRestoring
)

// EditorSession holds the full editing state for one shopper's design: the
// live canvas for the active zone, every zone's persisted state and
// history, and the derived price. All access goes through the session
// mutex; operations are serialized per session, which preserves the
// mutation -> history-record -> reprice ordering of a single-threaded
// event loop.
type EditorSession struct {
	ID        string
	ProductID string
	Variation model.ProductVariation
	Material  model.Material

	mu             sync.Mutex
	canvas         *canvas.Canvas
	states         map[string]*model.ZoneState
	activeZoneID   string
	activeObjectID string
	mode           sessionMode
	pricingBusy    bool
	price          model.PriceDetails
	createdAt      time.Time
	updatedAt      time.Time
}

// SessionState is an immutable view of a session returned to the HTTP
// layer. Layers holds the active zone's user objects in z-order.
type SessionState struct {
	ID             string               `json:"id"`
	ProductID      string               `json:"product_id"`
	VariationID    string               `json:"variation_id"`
	Zones          []model.EngravingZone `json:"zones"`
	ActiveZoneID   string               `json:"active_zone_id"`
	ActiveObjectID string               `json:"active_object_id,omitempty"`
	Layers         []model.DesignObject `json:"layers"`
	Price          model.PriceDetails   `json:"price"`
	CanUndo        bool                 `json:"can_undo"`
	CanRedo        bool                 `json:"can_redo"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// TextParams describes a new text layer.
type TextParams struct {
	Text       string
	FontFamily string
	FontSize   float64
	Align      string
}

// ObjectPatch is a partial property update for the active object. Nil
// fields are left untouched.
type ObjectPatch struct {
	Text       *string
	FontFamily *string
	FontSize   *float64
	Fill       *string
	Align      *string
	Bold       *bool
	Italic     *bool
	Underline  *bool
	X          *float64
	Y          *float64
	Angle      *float64
	Opacity    *float64
	Width      *float64
	Height     *float64
	ScaleX     *float64
	ScaleY     *float64
}

// Editor defines the editor session operations.
type Editor interface {
	CreateSession(ctx context.Context, productID, variationID string) (SessionState, error)
	Session(ctx context.Context, sessionID string) (SessionState, error)
	SwitchZone(ctx context.Context, sessionID, zoneID string) (SessionState, error)
	AddText(ctx context.Context, sessionID string, params TextParams) (SessionState, error)
	InsertPricedImage(ctx context.Context, sessionID, payload string, kind model.ObjectKind) (SessionState, error)
	Modify(ctx context.Context, sessionID, objectID string, patch ObjectPatch) (SessionState, error)
	SetCurve(ctx context.Context, sessionID, objectID string, curve float64) (SessionState, error)
	Arrange(ctx context.Context, sessionID, objectID, direction string) (SessionState, error)
	Delete(ctx context.Context, sessionID, objectID string) (SessionState, error)
	Undo(ctx context.Context, sessionID string) (SessionState, error)
	Redo(ctx context.Context, sessionID string) (SessionState, error)
	Price(ctx context.Context, sessionID string) (model.PriceDetails, error)
}

// EditorOption configures an EditorService.
type EditorOption func(*EditorService)

// WithUploadLimit sets the maximum accepted image payload size in bytes.
func WithUploadLimit(maxBytes int) EditorOption {
	return func(s *EditorService) {
		if maxBytes > 0 {
			s.maxUploadBytes = maxBytes
		}
	}
}

// EditorService implements Editor on top of the session store, the catalog,
// the pricing aggregator and the external image pricing client.
type EditorService struct {
	sessions       *SessionStore
	catalog        Catalog
	aggregator     PricingAggregator
	imagePricer    client.PricingClient
	maxUploadBytes int
}

// NewEditorService creates a new EditorService.
func NewEditorService(
	sessions *SessionStore,
	catalog Catalog,
	aggregator PricingAggregator,
	imagePricer client.PricingClient,
	opts ...EditorOption,
) *EditorService {
	s := &EditorService{
		sessions:       sessions,
		catalog:        catalog,
		aggregator:     aggregator,
		imagePricer:    imagePricer,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession initializes a new editor session for a product variation:
// one ZoneState per engraving zone, the first zone live on the canvas, and
// the price at the variation's base.
func (s *EditorService) CreateSession(ctx context.Context, productID, variationID string) (SessionState, error) {
	variation, material, err := s.catalog.ResolveVariation(productID, variationID)
	if err != nil {
		return SessionState{}, err
	}
	if len(variation.Zones) == 0 {
		return SessionState{}, fmt.Errorf("%w: variation %s has no engraving zones", ErrUnknownVariation, variationID)
	}

	now := time.Now()
	sess := &EditorSession{
		ID:        ulid.Make().String(),
		ProductID: productID,
		Variation: variation,
		Material:  material,
		states:    make(map[string]*model.ZoneState, len(variation.Zones)),
		createdAt: now,
		updatedAt: now,
	}
	for _, z := range variation.Zones {
		sess.states[z.ID] = model.NewZoneState(z.ID)
	}
	first := variation.Zones[0]
	sess.activeZoneID = first.ID
	sess.canvas = canvas.New(first)
	sess.price = model.EmptyPrice(variation.BasePrice)

	s.sessions.Put(sess)
	metrics.RecordSessionCreated()
	log.Info().
		Str("session_id", sess.ID).
		Str("product_id", productID).
		Str("variation_id", variationID).
		Int("zones", len(variation.Zones)).
		Msg("Editor session created")

	return sess.view(nil), nil
}

// Session returns the current state of a session.
func (s *EditorService) Session(ctx context.Context, sessionID string) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(nil), nil
}

// SwitchZone persists the active zone's live content, then loads the target
// zone's stored snapshot onto the canvas with its clip and guide
// re-established. Switching to the active zone or to an unknown zone is a
// silent no-op. Content in the zone being left is never lost.
func (s *EditorService) SwitchZone(ctx context.Context, sessionID, zoneID string) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if zoneID == sess.activeZoneID {
		return sess.view(nil), nil
	}
	target, exists := sess.states[zoneID]
	if !exists {
		// Zone set not initialized for this id; reject silently.
		return sess.view(nil), nil
	}
	zone, ok := sess.Variation.Zone(zoneID)
	if !ok {
		return sess.view(nil), nil
	}

	// Persist the zone being left before anything else.
	if err := sess.persistActive(); err != nil {
		return SessionState{}, err
	}

	sess.mode = modeRestoring
	err := sess.canvas.Load(target.Serialized, zone)
	sess.mode = modeIdle
	if err != nil {
		return SessionState{}, err
	}

	sess.activeZoneID = zoneID
	sess.activeObjectID = ""
	sess.touch()
	metrics.RecordEditorMutation("switch_zone", "success")
	return sess.view(nil), nil
}

// AddText creates a material-styled text layer centered in the active zone.
func (s *EditorService) AddText(ctx context.Context, sessionID string, params TextParams) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	zone, _ := sess.Variation.Zone(sess.activeZoneID)
	obj := newTextObject(params, sess.Material, zone.Bounds)
	sess.canvas.Add(obj)
	sess.activeObjectID = obj.ID

	if err := s.commit(sess, "add_text"); err != nil {
		return SessionState{}, err
	}
	return sess.view(nil), nil
}

// InsertPricedImage sends the payload to the external pricing service and,
// on success, places the priced image-like layer in the active zone. On
// pricing failure nothing is inserted. While a pricing request is in
// flight, further inserts and checkout are rejected.
func (s *EditorService) InsertPricedImage(ctx context.Context, sessionID, payload string, kind model.ObjectKind) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}

	warnings, err := validateUpload(payload, kind, s.maxUploadBytes)
	if err != nil {
		return SessionState{}, err
	}

	sess.mu.Lock()
	if sess.pricingBusy {
		sess.mu.Unlock()
		return SessionState{}, ErrPricingInFlight
	}
	sess.pricingBusy = true
	sess.mu.Unlock()

	price, priceErr := s.imagePricer.PriceImage(ctx, payload, string(kind))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pricingBusy = false

	if priceErr != nil {
		metrics.RecordEditorMutation("insert_image", "pricing_error")
		log.Warn().Err(priceErr).Str("session_id", sessionID).Msg("Image pricing failed, insertion aborted")
		return SessionState{}, fmt.Errorf("%w: %v", ErrPricingUnavailable, priceErr)
	}

	zone, _ := sess.Variation.Zone(sess.activeZoneID)
	obj := newImageObject(payload, kind, price, sess.Material, zone.Bounds)
	sess.canvas.Add(obj)
	sess.activeObjectID = obj.ID

	if err := s.commit(sess, "insert_image"); err != nil {
		return SessionState{}, err
	}
	return sess.view(warnings), nil
}

// Modify applies a property patch to an object. Unknown object ids are a
// no-op. Text scale factors are folded back into font size and width so the
// nominal font size stays meaningful under repeated resizes.
func (s *EditorService) Modify(ctx context.Context, sessionID, objectID string, patch ObjectPatch) (SessionState, error) {
	return s.mutate(sessionID, objectID, "modify", func(obj *model.DesignObject) {
		applyPatch(obj, patch)
	})
}

// SetCurve updates a text layer's baseline curve. The curve value is
// clamped to [-100, 100]; zero restores a straight baseline. The derived
// arc is a rendering side channel and does not change bounding geometry.
func (s *EditorService) SetCurve(ctx context.Context, sessionID, objectID string, curve float64) (SessionState, error) {
	return s.mutate(sessionID, objectID, "set_curve", func(obj *model.DesignObject) {
		if !obj.IsText() {
			return
		}
		applyCurve(obj, curve)
	})
}

// Arrange reorders an object within the zone's z-order.
func (s *EditorService) Arrange(ctx context.Context, sessionID, objectID, direction string) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.canvas.Arrange(objectID, direction) {
		return sess.view(nil), nil
	}
	if err := s.commit(sess, "arrange"); err != nil {
		return SessionState{}, err
	}
	return sess.view(nil), nil
}

// Delete removes an object and clears the active selection. No other
// object is implicitly selected.
func (s *EditorService) Delete(ctx context.Context, sessionID, objectID string) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.canvas.Remove(objectID) {
		return sess.view(nil), nil
	}
	sess.activeObjectID = ""
	if err := s.commit(sess, "delete"); err != nil {
		return SessionState{}, err
	}
	return sess.view(nil), nil
}

// Undo steps the active zone's history back one entry and restores it onto
// the canvas. No-op at the boundary.
func (s *EditorService) Undo(ctx context.Context, sessionID string) (SessionState, error) {
	return s.step(sessionID, "undo", Undo)
}

// Redo steps the active zone's history forward one entry.
func (s *EditorService) Redo(ctx context.Context, sessionID string) (SessionState, error) {
	return s.step(sessionID, "redo", Redo)
}

// Price returns the current derived price details.
func (s *EditorService) Price(ctx context.Context, sessionID string) (model.PriceDetails, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return model.PriceDetails{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.price, nil
}

// mutate looks up the object and applies fn, then commits. A missing
// object is a no-op returning the current state.
func (s *EditorService) mutate(sessionID, objectID, action string, fn func(*model.DesignObject)) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	obj, found := sess.canvas.Get(objectID)
	if !found {
		return sess.view(nil), nil
	}
	fn(obj)
	sess.activeObjectID = objectID
	if err := s.commit(sess, action); err != nil {
		return SessionState{}, err
	}
	return sess.view(nil), nil
}

// step performs undo or redo on the active zone: moves the cursor, loads
// the snapshot under restoring mode, re-applies the clip, refreshes price.
func (s *EditorService) step(sessionID, action string, move func(*model.ZoneState) (model.Snapshot, bool)) (SessionState, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionState{}, ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	state := sess.states[sess.activeZoneID]
	snap, moved := move(state)
	if !moved {
		return sess.view(nil), nil
	}
	zone, _ := sess.Variation.Zone(sess.activeZoneID)

	sess.mode = modeRestoring
	err := sess.canvas.Load(snap, zone)
	sess.mode = modeIdle
	if err != nil {
		return SessionState{}, err
	}

	state.Serialized = snap
	sess.activeObjectID = ""
	s.reprice(sess)
	sess.touch()
	metrics.RecordEditorMutation(action, "success")
	return sess.view(nil), nil
}

// commit is the common tail of every content mutation: serialize the live
// canvas into the active ZoneState, record a history snapshot (suppressed
// in restoring mode), recompute pricing, update metrics.
func (s *EditorService) commit(sess *EditorSession, action string) error {
	snap, err := sess.canvas.Serialize()
	if err != nil {
		metrics.RecordEditorMutation(action, "error")
		return err
	}
	state := sess.states[sess.activeZoneID]
	state.Serialized = snap
	if sess.mode != modeRestoring {
		RecordSnapshot(state, snap)
	}
	s.reprice(sess)
	sess.touch()
	metrics.RecordEditorMutation(action, "success")
	metrics.ObserveHistoryDepth(len(state.History))
	return nil
}

// reprice synchronously recomputes the derived price from all zone states.
func (s *EditorService) reprice(sess *EditorSession) {
	start := time.Now()
	sess.price = s.aggregator.Recompute(sess.Variation.BasePrice, sess.states)
	metrics.RecordPricingRecompute(time.Since(start))
}

// persistActive serializes the live canvas into the active ZoneState
// without recording history (zone switches are not edits).
func (sess *EditorSession) persistActive() error {
	snap, err := sess.canvas.Serialize()
	if err != nil {
		return err
	}
	sess.states[sess.activeZoneID].Serialized = snap
	return nil
}

// touch updates the session's last-activity timestamp.
func (sess *EditorSession) touch() {
	sess.updatedAt = time.Now()
}

// view builds the immutable state view. Callers must hold sess.mu.
func (sess *EditorSession) view(warnings []string) SessionState {
	state := sess.states[sess.activeZoneID]
	return SessionState{
		ID:             sess.ID,
		ProductID:      sess.ProductID,
		VariationID:    sess.Variation.ID,
		Zones:          sess.Variation.Zones,
		ActiveZoneID:   sess.activeZoneID,
		ActiveObjectID: sess.activeObjectID,
		Layers:         sess.canvas.Objects(),
		Price:          sess.price,
		CanUndo:        state.HistoryIndex > 0,
		CanRedo:        state.HistoryIndex < len(state.History)-1,
		Warnings:       warnings,
	}
}

// snapshotStates returns a copy of the zone states with the active zone's
// live content flushed, for cross-zone readers (pricing, checkout).
// Callers must hold sess.mu.
func (sess *EditorSession) snapshotStates() (map[string]*model.ZoneState, error) {
	if err := sess.persistActive(); err != nil {
		return nil, err
	}
	out := make(map[string]*model.ZoneState, len(sess.states))
	for id, st := range sess.states {
		cp := *st
		out[id] = &cp
	}
	return out, nil
}

// newObjectID returns a unique id for a design object.
func newObjectID() string {
	return uuid.New().String()
}

// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/service"
)

// AuditLog logs an action for audit purposes.
// This should be used for critical actions like checkout and configuration changes.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	requestID := GetRequestID(c)
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    message,
		RequestID:  requestID,
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Fields:     fields,
	}

	storeAuditEntry(loggingService, entry)
}

// AuditEditorLog logs an editor action tied to a design session.
func AuditEditorLog(loggingService service.LoggingService, c *gin.Context, sessionID, actionType string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	requestID := GetRequestID(c)
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    "Editor action",
		RequestID:  requestID,
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		SessionID:  sessionID,
		ActionType: actionType,
		Fields:     fields,
	}

	storeAuditEntry(loggingService, entry)
}

// AuditLogError logs an error action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	requestID := GetRequestID(c)
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "error",
		Message:    message,
		RequestID:  requestID,
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Error:      err.Error(),
		Fields:     fields,
	}

	storeAuditEntry(loggingService, entry)
}

// storeAuditEntry writes the entry without blocking the request, through
// the buffered async logger when one is initialized.
func storeAuditEntry(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}

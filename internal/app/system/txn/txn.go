// internal/app/system/txn/txn.go

// Package txn wraps multi-document MongoDB transactions with a fallback
// for deployments that cannot run them (standalone servers without a
// replica set). The accrual service uses this so a bulk attendance batch
// commits as a unit wherever the server allows it.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a transaction session. If the server
// does not support transactions, fn runs once without a session and the
// degradation is logged; callers keep their own validation-first ordering
// so the common failure modes stay all-or-nothing either way.
func WithTransaction(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("transactions unsupported by deployment; running without a session", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Warn("transactions unsupported by deployment; running without a session", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Transaction-related server error codes.
const (
	codeIllegalOperation        = 20
	codeCommandNotSupported     = 51
	codeOperationNotSupportedIn = 263
)

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions. It checks known command error codes first
// and falls back to keyword matching, which works across vendors that
// speak the Mongo wire protocol with their own error text.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupportedIn:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") &&
		(strings.Contains(s, "replica set") || strings.Contains(s, "session") || strings.Contains(s, "illegal operation")) {
		return true
	}
	return strings.Contains(s, "session") && strings.Contains(s, "not supported")
}

package service

import (
	"context"
	"errors"

	"github.com/glYohanny/Gucci/internal/apierror"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction. Returning an error from fn
// rolls back every write made through tx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// noEncontrado maps a missing row to a NotFound error carrying msg and
// passes every other error through.
func noEncontrado(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.Wrap(apierror.KindNoEncontrado, err, msg)
	}
	return err
}

// duplicado maps a unique-constraint violation to a Conflict error.
func duplicado(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Wrap(apierror.KindConflicto, err, msg)
	}
	return err
}

const formatoFecha = "2006-01-02"

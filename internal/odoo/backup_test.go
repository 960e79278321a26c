package odoo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackupUnknownInstance(t *testing.T) {
	fx := newTestManager(t)
	_, err := fx.m.Backup(context.Background(), "ghost")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
)

func TestErr(t *testing.T) {
	attr := sl.Err(errors.New("lease not found"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("lease not found"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "", attr.Value.String())
	})
}

func TestOp(t *testing.T) {
	attr := sl.Op("payments.Overview")

	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "payments.Overview", attr.Value.String())
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSearchRequiresQuery(t *testing.T) {
	svc := &ProductService{}

	for _, term := range []string{"", "   "} {
		_, err := svc.Search(context.Background(), term)
		require.Error(t, err)
		assert.Equal(t, 400, statusOf(err))
	}
}

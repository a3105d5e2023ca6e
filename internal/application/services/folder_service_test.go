package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

func TestFolderService(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewFolderService(st.folders, logger.NewNop())

	folder, err := svc.CreateFolder(ctx, ports.CreateFolderRequest{Name: "  Biology "})
	require.NoError(t, err)
	assert.Equal(t, "Biology", folder.Name)
	assert.Equal(t, DefaultFolderColor, folder.Color)

	updated, err := svc.UpdateFolder(ctx, folder.ID, ports.UpdateFolderRequest{Color: strPtr("#10b981")})
	require.NoError(t, err)
	assert.Equal(t, "Biology", updated.Name)
	assert.Equal(t, "#10b981", updated.Color)

	list, err := svc.ListFolders(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteFolder(ctx, folder.ID))
	_, err = svc.GetFolder(ctx, folder.ID)
	assert.ErrorIs(t, err, entities.ErrFolderNotFound)

	_, err = svc.UpdateFolder(ctx, folder.ID, ports.UpdateFolderRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, entities.ErrFolderNotFound)
}

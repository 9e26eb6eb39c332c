package repository

import (
	"testing"

	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
	"github.com/rocketscienceinc/connectfive-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage, testTTL)

	// Given: a player seated in a game
	player, err := entity.NewPlayer("123", "alice", entity.MarkBlue)
	require.NoError(t, err)
	player.GameID = "game-1"

	// When: CreateOrUpdate is called
	err = playerRepo.CreateOrUpdate(ctx, player)

	// Then: no error should be returned, and player is stored
	require.NoError(t, err)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, testTTL)

		// Given: a stored player with an opponent
		player, err := entity.NewPlayer("123", "alice", entity.MarkBlue)
		require.NoError(t, err)
		opponent, err := entity.NewPlayer("456", "bob", entity.MarkRed)
		require.NoError(t, err)
		require.NoError(t, player.SetOpponent(opponent))
		player.GameID = "game-1"

		err = playerRepo.CreateOrUpdate(ctx, player)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player should match the saved player
		require.NoError(t, err)
		assert.Equal(t, player.ID, retrieved.ID)
		assert.Equal(t, player.Name, retrieved.Name)
		assert.Equal(t, player.Mark, retrieved.Mark)
		assert.Equal(t, "game-1", retrieved.GameID)
		assert.Equal(t, "456", retrieved.OpponentID)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, testTTL)

		// When: GetByID is called with non-existent ID
		retrieved, err := playerRepo.GetByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestPlayerRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, testTTL)

		// Given: a stored player
		player, err := entity.NewPlayer("123", "alice", entity.MarkBlue)
		require.NoError(t, err)

		err = playerRepo.CreateOrUpdate(ctx, player)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = playerRepo.DeleteByID(ctx, player.ID)

		// Then: no error should be returned and the player is gone
		require.NoError(t, err)

		_, err = playerRepo.GetByID(ctx, player.ID)
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, testTTL)

		// When: DeleteByID is called with non-existent ID
		err := playerRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

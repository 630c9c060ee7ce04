package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	rosterRepo "github.com/KirkDiggler/othership-bot/internal/repositories/roster"
	mockrosterrepo "github.com/KirkDiggler/othership-bot/internal/repositories/roster/mock"
	rostersvc "github.com/KirkDiggler/othership-bot/internal/services/roster"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
)

func TestJoinLeave(t *testing.T) {
	ctx := context.Background()
	svc := rostersvc.NewService(&rostersvc.ServiceConfig{
		Repository: rosterRepo.NewInMemoryRepository(testutils.NewStepClock(testutils.Epoch, time.Minute)),
	})

	entry, joined, err := svc.Join(ctx, "g1", "u1", " ")
	require.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, "u1", entry.DisplayName, "blank names fall back to the user id")

	_, joined, err = svc.Join(ctx, "g1", "u1", "Ripley")
	require.NoError(t, err)
	assert.False(t, joined)

	member, err := svc.IsMember(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.True(t, member)

	require.NoError(t, svc.Leave(ctx, "g1", "u1"))

	member, err = svc.IsMember(ctx, "g1", "u1")
	require.NoError(t, err)
	assert.False(t, member)

	err = svc.Leave(ctx, "g1", "u1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrosterrepo.NewMockRepository(ctrl)
	svc := rostersvc.NewService(&rostersvc.ServiceConfig{Repository: repo})
	ctx := context.Background()

	repo.EXPECT().Add(ctx, "g1", "u1", "Dallas").Return(nil, false, errors.New("redis down"))
	_, _, err := svc.Join(ctx, "g1", "u1", "Dallas")
	assert.ErrorContains(t, err, "failed to join roster")

	repo.EXPECT().Get(ctx, "g1", "u1").Return(nil, errors.New("redis down"))
	_, err = svc.IsMember(ctx, "g1", "u1")
	assert.Error(t, err)

	repo.EXPECT().List(ctx, "g1").Return([]*roster.Entry{{GuildID: "g1", UserID: "u1"}}, nil)
	entries, err := svc.List(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

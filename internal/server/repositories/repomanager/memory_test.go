package repomanager

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryManager_AnswersRequireQuestion(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()
	require.NoError(t, m.RunMigrations(ctx))

	_, err := m.Answers().Create(ctx, models.NewAnswer{Content: "a", QuestionID: 1}, 1)
	assert.ErrorIs(t, err, common.ErrorInvalidReference)

	q, err := m.Questions().Create(ctx, models.NewQuestion{Title: "t", Content: "c"}, 1)
	require.NoError(t, err)
	_, err = m.Answers().Create(ctx, models.NewAnswer{Content: "a", QuestionID: q.ID}, 2)
	require.NoError(t, err)

	err = m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		n, err := r.Answers().DeleteByQuestion(ctx, q.ID, 2)
		assert.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, m.Close())
}

func TestMemoryManager_AnswerCreateWaitsForTx(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()

	q, err := m.Questions().Create(ctx, models.NewQuestion{Title: "t", Content: "c"}, 1)
	require.NoError(t, err)

	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
			if _, err := r.Answers().DeleteByQuestion(ctx, q.ID, 1); err != nil {
				return err
			}
			close(inTx)
			<-release
			_, err := r.Questions().Delete(ctx, q.ID, 1)
			return err
		})
	}()
	<-inTx

	created := make(chan error, 1)
	go func() {
		_, err := m.Answers().Create(ctx, models.NewAnswer{Content: "late", QuestionID: q.ID}, 2)
		created <- err
	}()

	select {
	case err := <-created:
		t.Fatalf("answer created during transaction: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-txDone)
	assert.ErrorIs(t, <-created, common.ErrorInvalidReference)

	left, err := m.Answers().ListByQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

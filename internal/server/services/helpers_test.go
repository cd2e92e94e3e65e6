package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/server/auth"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/dmitrijs2005/gophqa/internal/server/moderation"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/answers"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/questions"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func tokenFor(t *testing.T, id models.AccountID) string {
	t.Helper()
	tok, err := auth.GenerateToken(id, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

// spyManager wraps the memory store and counts every data-layer call.
type spyManager struct {
	inner *repomanager.MemoryRepositoryManager
	calls atomic.Int64
	// failWith, when set, is returned by every data-layer call.
	failWith error
}

func newSpyManager() *spyManager {
	return &spyManager{inner: repomanager.NewMemoryRepositoryManager()}
}

func (s *spyManager) hit() error {
	s.calls.Add(1)
	return s.failWith
}

func (s *spyManager) Accounts() accounts.Repository   { return spyAccounts{s} }
func (s *spyManager) Questions() questions.Repository { return spyQuestions{s} }
func (s *spyManager) Answers() answers.Repository     { return spyAnswers{s} }

func (s *spyManager) RunMigrations(context.Context) error { return nil }
func (s *spyManager) Ping(context.Context) error          { return nil }
func (s *spyManager) Close() error                        { return nil }

func (s *spyManager) WithTx(ctx context.Context, fn func(ctx context.Context, r repomanager.Repositories) error) error {
	if err := s.hit(); err != nil {
		return err
	}
	return fn(ctx, s)
}

type spyAccounts struct{ s *spyManager }

func (r spyAccounts) Create(ctx context.Context, email string, hash []byte) (*models.Account, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Accounts().Create(ctx, email, hash)
}

func (r spyAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Accounts().GetByEmail(ctx, email)
}

type spyQuestions struct{ s *spyManager }

func (r spyQuestions) Create(ctx context.Context, q models.NewQuestion, owner models.AccountID) (*models.Question, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Questions().Create(ctx, q, owner)
}

func (r spyQuestions) Get(ctx context.Context, id int64) (*models.Question, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Questions().Get(ctx, id)
}

func (r spyQuestions) List(ctx context.Context, p models.Pagination) ([]models.Question, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Questions().List(ctx, p)
}

func (r spyQuestions) Update(ctx context.Context, id int64, q models.NewQuestion, owner models.AccountID) (*models.Question, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Questions().Update(ctx, id, q, owner)
}

func (r spyQuestions) Delete(ctx context.Context, id int64, owner models.AccountID) (bool, error) {
	if err := r.s.hit(); err != nil {
		return false, err
	}
	return r.s.inner.Questions().Delete(ctx, id, owner)
}

func (r spyQuestions) Owner(ctx context.Context, id int64) (models.AccountID, error) {
	if err := r.s.hit(); err != nil {
		return 0, err
	}
	return r.s.inner.Questions().Owner(ctx, id)
}

type spyAnswers struct{ s *spyManager }

func (r spyAnswers) Create(ctx context.Context, a models.NewAnswer, owner models.AccountID) (*models.Answer, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Answers().Create(ctx, a, owner)
}

func (r spyAnswers) Get(ctx context.Context, id int64) (*models.Answer, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Answers().Get(ctx, id)
}

func (r spyAnswers) ListByQuestion(ctx context.Context, qid int64) ([]models.Answer, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Answers().ListByQuestion(ctx, qid)
}

func (r spyAnswers) Update(ctx context.Context, id int64, content string, owner models.AccountID) (*models.Answer, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	return r.s.inner.Answers().Update(ctx, id, content, owner)
}

func (r spyAnswers) Delete(ctx context.Context, id int64, owner models.AccountID) (bool, error) {
	if err := r.s.hit(); err != nil {
		return false, err
	}
	return r.s.inner.Answers().Delete(ctx, id, owner)
}

func (r spyAnswers) CountNotOwned(ctx context.Context, qid int64, owner models.AccountID) (int64, error) {
	if err := r.s.hit(); err != nil {
		return 0, err
	}
	return r.s.inner.Answers().CountNotOwned(ctx, qid, owner)
}

func (r spyAnswers) DeleteByQuestion(ctx context.Context, qid int64, owner models.AccountID) (int64, error) {
	if err := r.s.hit(); err != nil {
		return 0, err
	}
	return r.s.inner.Answers().DeleteByQuestion(ctx, qid, owner)
}

func (r spyAnswers) Owner(ctx context.Context, id int64) (models.AccountID, error) {
	if err := r.s.hit(); err != nil {
		return 0, err
	}
	return r.s.inner.Answers().Owner(ctx, id)
}

// checkerFunc adapts a function to moderation.Checker.
type checkerFunc func(ctx context.Context, text string) (string, error)

func (f checkerFunc) Check(ctx context.Context, text string) (string, error) { return f(ctx, text) }

// censor replaces "darn" with "****" and records every text it sees.
type censor struct {
	mu   sync.Mutex
	seen []string
}

func (c *censor) Check(_ context.Context, text string) (string, error) {
	c.mu.Lock()
	c.seen = append(c.seen, text)
	c.mu.Unlock()
	return strings.ReplaceAll(text, "darn", "****"), nil
}

func newQuestionService(m repomanager.RepositoryManager, c moderation.Checker) *QuestionService {
	return NewQuestionService(m, auth.NewVerifier(testSecret), c, logging.Nop{})
}

func newAnswerService(m repomanager.RepositoryManager, c moderation.Checker) *AnswerService {
	return NewAnswerService(m, auth.NewVerifier(testSecret), c, logging.Nop{})
}

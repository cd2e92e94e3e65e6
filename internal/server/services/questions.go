package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/dmitrijs2005/gophqa/internal/server/moderation"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/repomanager"
)

type QuestionService struct {
	repos     repomanager.RepositoryManager
	verifier  Verifier
	moderator moderation.Checker
	owners    *OwnershipAuthorizer
	log       logging.Logger
}

func NewQuestionService(m repomanager.RepositoryManager, v Verifier, c moderation.Checker, log logging.Logger) *QuestionService {
	return &QuestionService{
		repos:     m,
		verifier:  v,
		moderator: c,
		owners:    NewOwnershipAuthorizer(m),
		log:       log,
	}
}

func validateQuestion(q models.NewQuestion) error {
	if strings.TrimSpace(q.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(q.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

// Create stores a new question owned by the account behind credential.
// Title and content are replaced by their moderated versions.
func (s *QuestionService) Create(ctx context.Context, credential string, nq models.NewQuestion) (*models.Question, error) {
	const op = "questions.Create"

	account, err := authenticate(s.verifier, op, credential)
	if err != nil {
		return nil, err
	}
	if err := validateQuestion(nq); err != nil {
		return nil, newError(op, KindInvalidInput, err)
	}
	if err := moderateAll(ctx, s.moderator, &nq.Title, &nq.Content); err != nil {
		return nil, fromModeration(op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindUpstream, err)
	}

	q, err := s.repos.Questions().Create(ctx, nq, account)
	if err != nil {
		return nil, fromData(op, err)
	}

	s.log.Info(ctx, "question created", "id", q.ID, "account_id", account)
	return q, nil
}

// Update overwrites a question the caller owns.
func (s *QuestionService) Update(ctx context.Context, credential string, id int64, nq models.NewQuestion) (*models.Question, error) {
	const op = "questions.Update"

	account, err := authenticate(s.verifier, op, credential)
	if err != nil {
		return nil, err
	}
	if err := validateQuestion(nq); err != nil {
		return nil, newError(op, KindInvalidInput, err)
	}
	if err := moderateAll(ctx, s.moderator, &nq.Title, &nq.Content); err != nil {
		return nil, fromModeration(op, err)
	}
	if err := s.owners.authorize(ctx, op, ResourceQuestion, id, account); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindUpstream, err)
	}

	q, err := s.repos.Questions().Update(ctx, id, nq, account)
	if err != nil {
		return nil, fromData(op, err)
	}

	s.log.Info(ctx, "question updated", "id", id, "account_id", account)
	return q, nil
}

// Delete removes a question the caller owns together with the caller's own
// answers to it. Answers by other accounts keep the question in place.
func (s *QuestionService) Delete(ctx context.Context, credential string, id int64) (bool, error) {
	const op = "questions.Delete"

	account, err := authenticate(s.verifier, op, credential)
	if err != nil {
		return false, err
	}
	if err := s.owners.authorize(ctx, op, ResourceQuestion, id, account); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, newError(op, KindUpstream, err)
	}

	err = s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		others, err := r.Answers().CountNotOwned(ctx, id, account)
		if err != nil {
			return err
		}
		if others > 0 {
			return fmt.Errorf("question %d has %d answers by other accounts: %w", id, others, common.ErrorHasDependents)
		}
		if _, err := r.Answers().DeleteByQuestion(ctx, id, account); err != nil {
			return err
		}
		ok, err := r.Questions().Delete(ctx, id, account)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return false, fromData(op, err)
	}

	s.log.Info(ctx, "question deleted", "id", id, "account_id", account)
	return true, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*models.Question, error) {
	q, err := s.repos.Questions().Get(ctx, id)
	if err != nil {
		return nil, fromData("questions.Get", err)
	}
	return q, nil
}

func (s *QuestionService) List(ctx context.Context, p models.Pagination) ([]models.Question, error) {
	list, err := s.repos.Questions().List(ctx, p)
	if err != nil {
		return nil, fromData("questions.List", err)
	}
	return list, nil
}

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

type AnswerService struct {
	repos     repomanager.RepositoryManager
	verifier  Verifier
	moderator moderation.Checker
	owners    *OwnershipAuthorizer
	log       logging.Logger
}

func NewAnswerService(m repomanager.RepositoryManager, v Verifier, c moderation.Checker, log logging.Logger) *AnswerService {
	return &AnswerService{
		repos:     m,
		verifier:  v,
		moderator: c,
		owners:    NewOwnershipAuthorizer(m),
		log:       log,
	}
}

// Create attaches a moderated answer to an existing question.
func (s *AnswerService) Create(ctx context.Context, credential string, na models.NewAnswer) (*models.Answer, error) {
	const op = "answers.Create"

	account, err := authenticate(s.verifier, op, credential)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(na.Content) == "" {
		return nil, newError(op, KindInvalidInput, errors.New("content is required"))
	}
	if na.QuestionID <= 0 {
		return nil, newError(op, KindInvalidInput, errors.New("question_id is required"))
	}
	if exists, _, err := s.owners.Lookup(ctx, ResourceQuestion, na.QuestionID, account); err != nil {
		return nil, newError(op, KindUpstream, err)
	} else if !exists {
		return nil, newError(op, KindNotFound, fmt.Errorf("question %d: %w", na.QuestionID, common.ErrorNotFound))
	}
	if err := moderateAll(ctx, s.moderator, &na.Content); err != nil {
		return nil, fromModeration(op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindUpstream, err)
	}

	a, err := s.repos.Answers().Create(ctx, na, account)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidReference) {
			return nil, newError(op, KindNotFound, err)
		}
		return nil, fromData(op, err)
	}

	s.log.Info(ctx, "answer created", "id", a.ID, "question_id", a.QuestionID, "account_id", account)
	return a, nil
}

// Update replaces the content of an answer the caller owns. The question
// reference is never changed.
func (s *AnswerService) Update(ctx context.Context, credential string, id int64, na models.NewAnswer) (*models.Answer, error) {
	const op = "answers.Update"

	account, err := authenticate(s.verifier, op, credential)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(na.Content) == "" {
		return nil, newError(op, KindInvalidInput, errors.New("content is required"))
	}
	if err := moderateAll(ctx, s.moderator, &na.Content); err != nil {
		return nil, fromModeration(op, err)
	}
	if err := s.owners.authorize(ctx, op, ResourceAnswer, id, account); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, newError(op, KindUpstream, err)
	}

	a, err := s.repos.Answers().Update(ctx, id, na.Content, account)
	if err != nil {
		return nil, fromData(op, err)
	}

	s.log.Info(ctx, "answer updated", "id", id, "account_id", account)
	return a, nil
}

func (s *AnswerService) Delete(ctx context.Context, credential string, id int64) (bool, error) {
	const op = "answers.Delete"

	account, err := authenticate(s.verifier, op, credential)
	if err != nil {
		return false, err
	}
	if err := s.owners.authorize(ctx, op, ResourceAnswer, id, account); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, newError(op, KindUpstream, err)
	}

	ok, err := s.repos.Answers().Delete(ctx, id, account)
	if err != nil {
		return false, fromData(op, err)
	}
	if !ok {
		return false, newError(op, KindNotFound, common.ErrorNotFound)
	}

	s.log.Info(ctx, "answer deleted", "id", id, "account_id", account)
	return true, nil
}

func (s *AnswerService) Get(ctx context.Context, id int64) (*models.Answer, error) {
	a, err := s.repos.Answers().Get(ctx, id)
	if err != nil {
		return nil, fromData("answers.Get", err)
	}
	return a, nil
}

// ListByQuestion returns the answers of an existing question ordered by id.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID int64, p models.Pagination) ([]models.Answer, error) {
	const op = "answers.ListByQuestion"

	if _, err := s.repos.Questions().Get(ctx, questionID); err != nil {
		return nil, fromData(op, err)
	}

	list, err := s.repos.Answers().ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fromData(op, err)
	}
	return paginate(list, p), nil
}

func paginate[T any](items []T, p models.Pagination) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	items = items[p.Offset:]
	if p.Limit != nil && *p.Limit < len(items) {
		items = items[:*p.Limit]
	}
	return items
}

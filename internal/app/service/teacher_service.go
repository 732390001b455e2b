package service

import (
	"context"
	"strings"

	"faculty_api/internal/common"
	"faculty_api/internal/domain/model"
	"faculty_api/internal/domain/repository"

	"github.com/gosimple/slug"
)

type TeacherService struct {
	teacherRepo repository.TeacherRepository
}

func NewTeacherService(teacherRepo repository.TeacherRepository) *TeacherService {
	return &TeacherService{teacherRepo: teacherRepo}
}

type TeacherRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Gender  string `json:"gender"`
}

func (s *TeacherService) ListTeachers(ctx context.Context, subject string) ([]model.Teacher, error) {
	subjectSlug := ""
	if strings.TrimSpace(subject) != "" {
		subjectSlug = slug.Make(subject)
	}
	return s.teacherRepo.List(ctx, subjectSlug)
}

func (s *TeacherService) GetTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	return s.teacherRepo.FindByID(ctx, id)
}

func (s *TeacherService) CreateTeacher(ctx context.Context, req TeacherRequest) (*model.Teacher, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, common.Errorf("teacher name is required: %w", common.ErrValidation)
	}
	teacher := &model.Teacher{
		Name:        req.Name,
		Subject:     req.Subject,
		SubjectSlug: slug.Make(req.Subject),
		Gender:      req.Gender,
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, common.Errorf("failed to create teacher: %w", err)
	}
	return teacher, nil
}

// UpdateTeacher overwrites every mutable field, like the PUT it backs.
func (s *TeacherService) UpdateTeacher(ctx context.Context, id int64, req TeacherRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return common.Errorf("teacher name is required: %w", common.ErrValidation)
	}
	teacher := &model.Teacher{
		ID:          id,
		Name:        req.Name,
		Subject:     req.Subject,
		SubjectSlug: slug.Make(req.Subject),
		Gender:      req.Gender,
	}
	return s.teacherRepo.Update(ctx, teacher)
}

func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	return s.teacherRepo.Delete(ctx, id)
}

package member

import (
	"context"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
)

type MemberServiceImpl struct {
	member.MemberRepository
}

func NewMemberService(repo member.MemberRepository) *MemberServiceImpl {
	return &MemberServiceImpl{MemberRepository: repo}
}

func toResponse(m member.Member) member.MemberResponse {
	return member.MemberResponse{
		ID:        m.ID,
		BranchID:  m.BranchID,
		Code:      m.Code,
		FullName:  m.FullName,
		Email:     m.Email,
		Phone:     m.Phone,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create implements member.MemberService.
func (s *MemberServiceImpl) Create(ctx context.Context, req member.CreateMemberRequest) (member.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return member.MemberResponse{}, err
	}

	code, err := s.MemberRepository.NextCode(ctx, req.BranchID)
	if err != nil {
		return member.MemberResponse{}, err
	}

	created, err := s.MemberRepository.Create(ctx, member.Member{
		BranchID: req.BranchID,
		Code:     code,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Active:   true,
	})
	if err != nil {
		return member.MemberResponse{}, err
	}

	return toResponse(created), nil
}

// Get implements member.MemberService.
func (s *MemberServiceImpl) Get(ctx context.Context, id string, branchID string) (member.MemberResponse, error) {
	m, err := s.MemberRepository.GetByID(ctx, id, branchID)
	if err != nil {
		return member.MemberResponse{}, err
	}
	return toResponse(m), nil
}

// List implements member.MemberService.
func (s *MemberServiceImpl) List(ctx context.Context, filter member.MemberFilter, branchID string) (member.ListMembersResponse, error) {
	if err := filter.Validate(); err != nil {
		return member.ListMembersResponse{}, err
	}

	members, total, err := s.MemberRepository.List(ctx, filter, branchID)
	if err != nil {
		return member.ListMembersResponse{}, err
	}

	items := make([]member.MemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toResponse(m))
	}

	return member.ListMembersResponse{Items: items, Total: total}, nil
}

// Update implements member.MemberService.
func (s *MemberServiceImpl) Update(ctx context.Context, branchID string, req member.UpdateMemberRequest) (member.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return member.MemberResponse{}, err
	}

	m, err := s.MemberRepository.GetByID(ctx, req.ID, branchID)
	if err != nil {
		return member.MemberResponse{}, err
	}

	if req.FullName != nil {
		m.FullName = *req.FullName
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Phone != nil {
		m.Phone = req.Phone
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.MemberRepository.Update(ctx, m); err != nil {
		return member.MemberResponse{}, err
	}

	return s.Get(ctx, m.ID, branchID)
}

// Deactivate implements member.MemberService.
func (s *MemberServiceImpl) Deactivate(ctx context.Context, id string, branchID string) error {
	return s.MemberRepository.Deactivate(ctx, id, branchID)
}

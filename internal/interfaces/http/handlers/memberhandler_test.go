package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberdto "f3manager/internal/application/member/dto"
	memberUsecases "f3manager/internal/application/member/usecases"
	"f3manager/internal/domain/member"
	"f3manager/internal/interfaces/http/handlers/testutil"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateMemberUC struct {
	result *member.Member
	err    error
	got    memberUsecases.ProfileInput
}

func (m *mockCreateMemberUC) Execute(ctx context.Context, in memberUsecases.ProfileInput) (*member.Member, error) {
	m.got = in
	return m.result, m.err
}

type mockGetMemberUC struct {
	result *memberdto.MemberDetailDTO
	err    error
}

func (m *mockGetMemberUC) Detail(ctx context.Context, id uint) (*memberdto.MemberDetailDTO, error) {
	return m.result, m.err
}

type mockListMembersUC struct {
	result *memberUsecases.ListMembersResult
	err    error
	got    memberUsecases.ListMembersQuery
}

func (m *mockListMembersUC) Execute(ctx context.Context, q memberUsecases.ListMembersQuery) (*memberUsecases.ListMembersResult, error) {
	m.got = q
	return m.result, m.err
}

type mockDeactivateMemberUC struct {
	err    error
	called uint
}

func (m *mockDeactivateMemberUC) Execute(ctx context.Context, id uint) error {
	m.called = id
	return m.err
}

type mockPurgeMemberUC struct {
	err   error
	actor authorization.Actor
}

func (m *mockPurgeMemberUC) Execute(ctx context.Context, id uint, actor authorization.Actor) error {
	m.actor = actor
	return m.err
}

// =====================================================================
// Helpers
// =====================================================================

var handlerToday = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestMember(t *testing.T, id uint) *member.Member {
	t.Helper()
	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	m, err := member.ReconstructMember(id, member.Profile{
		FirstName:        "Ana",
		LastNamePaternal: "López",
		Phone:            "5512345678",
		Email:            "ana@example.com",
		BirthDate:        &birth,
	}, true, handlerToday, handlerToday, handlerToday)
	require.NoError(t, err)
	return m
}

type memberHandlerDeps struct {
	create     *mockCreateMemberUC
	get        *mockGetMemberUC
	list       *mockListMembersUC
	deactivate *mockDeactivateMemberUC
	purge      *mockPurgeMemberUC
}

func newTestMemberHandler(d memberHandlerDeps) *MemberHandler {
	return NewMemberHandler(
		d.create, d.get, d.list, nil, d.deactivate, d.purge, nil, nil, nil,
		biztime.NewFixedClock(handlerToday),
		testutil.NewMockLogger(),
	)
}

// =====================================================================
// Tests
// =====================================================================

func TestMemberHandler_CreateMember_Success(t *testing.T) {
	mockUC := &mockCreateMemberUC{result: newTestMember(t, 1)}
	handler := newTestMemberHandler(memberHandlerDeps{create: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/members", CreateMemberRequest{
		FirstName:        "ana",
		LastNamePaternal: "lópez",
		Email:            "ana@example.com",
		BirthDate:        "1990-05-01",
	})

	handler.CreateMember(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got.BirthDate)
	assert.Equal(t, "1990-05-01", biztime.FormatDate(*mockUC.got.BirthDate))

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var data memberdto.MemberDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, uint(1), data.ID)
	assert.Equal(t, "Ana López", data.FullName)
	require.NotNil(t, data.Age)
	assert.Equal(t, 33, *data.Age)
}

func TestMemberHandler_CreateMember_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"missing last name", map[string]string{"first_name": "Ana"}},
		{"bad email", map[string]string{"first_name": "Ana", "last_name_paternal": "López", "email": "nope"}},
		{"bad birth date", map[string]string{"first_name": "Ana", "last_name_paternal": "López", "birth_date": "01/05/1990"}},
		{"malformed json", `{"first_name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateMemberUC{}
			handler := newTestMemberHandler(memberHandlerDeps{create: mockUC})
			c, w := testutil.NewTestContext(http.MethodPost, "/members", tt.body)

			handler.CreateMember(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		})
	}
}

func TestMemberHandler_CreateMember_UseCaseError(t *testing.T) {
	mockUC := &mockCreateMemberUC{err: errors.NewValidationError("member must be at least 14 years old")}
	handler := newTestMemberHandler(memberHandlerDeps{create: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/members", CreateMemberRequest{
		FirstName: "Ana", LastNamePaternal: "López", BirthDate: "2015-01-01",
	})

	handler.CreateMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "member must be at least 14 years old", resp.Error.Message)
}

func TestMemberHandler_GetMember(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		handler := newTestMemberHandler(memberHandlerDeps{
			get: &mockGetMemberUC{err: errors.NewNotFoundError("member not found")},
		})
		c, w := testutil.NewTestContext(http.MethodGet, "/members/9", nil)
		testutil.SetURLParam(c, "id", "9")

		handler.GetMember(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		handler := newTestMemberHandler(memberHandlerDeps{get: &mockGetMemberUC{}})
		c, w := testutil.NewTestContext(http.MethodGet, "/members/abc", nil)
		testutil.SetURLParam(c, "id", "abc")

		handler.GetMember(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal error is masked", func(t *testing.T) {
		handler := newTestMemberHandler(memberHandlerDeps{
			get: &mockGetMemberUC{err: stderrors.New("sql: connection refused")},
		})
		c, w := testutil.NewTestContext(http.MethodGet, "/members/1", nil)
		testutil.SetURLParam(c, "id", "1")

		handler.GetMember(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestMemberHandler_ListMembers(t *testing.T) {
	mockUC := &mockListMembersUC{result: &memberUsecases.ListMembersResult{
		Members: []*member.Member{newTestMember(t, 1), newTestMember(t, 2)},
		Total:   12,
	}}
	handler := newTestMemberHandler(memberHandlerDeps{list: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/members", nil)
	testutil.SetQueryParams(c, map[string]string{
		"search":      "lópez",
		"active_only": "true",
		"skip":        "10",
		"limit":       "2",
	})

	handler.ListMembers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lópez", mockUC.got.Search)
	assert.True(t, mockUC.got.ActiveOnly)
	assert.Equal(t, 10, mockUC.got.Skip)
	assert.Equal(t, 2, mockUC.got.Limit)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(12), list.Total)
	assert.Equal(t, 6, list.TotalPages)

	var items []memberdto.MemberDTO
	require.NoError(t, json.Unmarshal(list.Items, &items))
	assert.Len(t, items, 2)
}

func TestMemberHandler_DeleteMember_Deactivates(t *testing.T) {
	mockUC := &mockDeactivateMemberUC{}
	handler := newTestMemberHandler(memberHandlerDeps{deactivate: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/members/4", nil)
	testutil.SetURLParam(c, "id", "4")

	handler.DeleteMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), mockUC.called)
}

func TestMemberHandler_PurgeMember(t *testing.T) {
	t.Run("requires actor", func(t *testing.T) {
		handler := newTestMemberHandler(memberHandlerDeps{purge: &mockPurgeMemberUC{}})
		c, w := testutil.NewTestContext(http.MethodDelete, "/members/4/purge", nil)
		testutil.SetURLParam(c, "id", "4")

		handler.PurgeMember(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes actor through", func(t *testing.T) {
		mockUC := &mockPurgeMemberUC{}
		handler := newTestMemberHandler(memberHandlerDeps{purge: mockUC})
		c, _ := testutil.NewTestContext(http.MethodDelete, "/members/4/purge", nil)
		testutil.SetURLParam(c, "id", "4")
		testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

		handler.PurgeMember(c)

		assert.Equal(t, http.StatusNoContent, c.Writer.Status())
		assert.Equal(t, uint(1), mockUC.actor.StaffID)
		assert.Equal(t, authorization.RoleAdmin, mockUC.actor.Role)
	})

	t.Run("forbidden", func(t *testing.T) {
		handler := newTestMemberHandler(memberHandlerDeps{
			purge: &mockPurgeMemberUC{err: errors.NewForbiddenError("admin role required")},
		})
		c, w := testutil.NewTestContext(http.MethodDelete, "/members/4/purge", nil)
		testutil.SetURLParam(c, "id", "4")
		testutil.SetAuthContext(c, 2, authorization.RoleOperator)

		handler.PurgeMember(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func vectorsRequest(userID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/vectors", strings.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), "userID", userID))
}

func TestUpdateVectorsRejectsOutOfRangeTraits(t *testing.T) {
	handler := NewHandler(NewService(newFakeRepository()))

	rr := httptest.NewRecorder()
	handler.UpdateVectors(rr, vectorsRequest("alice", `{"personality":{"openness":140}}`))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUpdateVectorsAcceptsValidPartialBody(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	handler := NewHandler(svc)

	if _, err := svc.SubmitQuizResults(context.Background(), "alice", quizDTO()); err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.UpdateVectors(rr, vectorsRequest("alice", `{"personality":{"openness":90,"conscientiousness":60,"extraversion":50,"agreeableness":80,"neuroticism":40}}`))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (body: %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
}

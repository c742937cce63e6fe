package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anamnesis/internal/anamnesis/catalog"
	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/platform/config"
	id "anamnesis/pkg/domain"
	"anamnesis/pkg/platform/circuit"
	"anamnesis/pkg/platform/sentinel"
)

var testUser = id.UserID(uuid.MustParse("7a0b6c4e-5c7d-4a3b-9f59-2f8f3c2e1a10"))

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.RemoteConfig{
		BaseURL:          srv.URL + "/",
		ServiceToken:     "svc-token",
		Timeout:          time.Second,
		FailureThreshold: 2,
		Cooldown:         time.Minute,
	}, opts...)
}

func TestGetQuestions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/questions", r.URL.Path)
		assert.Equal(t, "pt-BR", r.URL.Query().Get("locale"))
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]models.Question{{
			ID:        "q1",
			SectionID: catalog.Body,
			AnswerOptions: []models.AnswerOption{
				{ID: "o1", Key: "none"},
			},
		}})
	}))

	questions, err := client.GetQuestions(context.Background(), "pt-BR")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, catalog.Body, questions[0].SectionID)
	assert.Equal(t, "none", questions[0].AnswerOptions[0].Key)
}

func TestGetUserAnswers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/"+testUser.String()+"/answers", r.URL.Path)
		_, _ = w.Write([]byte(`[{"questionConceptId":"q1","answerText":"2","answeredAt":"2024-01-01T00:00:00Z"}]`))
	}))

	answers, err := client.GetUserAnswers(context.Background(), testUser, "en-US")
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].AnswerText)
	assert.Equal(t, "2", *answers[0].AnswerText)
	assert.Nil(t, answers[0].AnswerOptionID)
}

func TestSubmitAnswer(t *testing.T) {
	var got models.RemoteAnswer
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))

	optionID := "o2"
	err := client.SubmitAnswer(context.Background(), testUser, models.RemoteAnswer{
		QuestionConceptID: "q1",
		AnswerOptionID:    &optionID,
		AnswerText:        "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "q1", got.QuestionConceptID)
	assert.Equal(t, "1", got.AnswerText)
}

func TestErrorKinds(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		_, err := client.GetUserMarkers(context.Background(), testUser)
		require.Error(t, err)
		assert.False(t, IsNetworkError(err))
		assert.Equal(t, http.StatusNotFound, StatusCode(err))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("decode", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		_, err := client.GetQuestions(context.Background(), "pt-BR")
		var re *Error
		require.True(t, errors.As(err, &re))
		assert.Equal(t, KindDecode, re.Kind)
	})

	t.Run("network", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := New(config.RemoteConfig{BaseURL: srv.URL, Timeout: time.Second})
		_, err := client.GetQuestions(context.Background(), "pt-BR")
		require.Error(t, err)
		assert.True(t, IsNetworkError(err))
	})
}

func TestCircuitOpensOnServerErrors(t *testing.T) {
	calls := 0
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("test",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}), WithBreaker(breaker))

	for range 2 {
		_, err := client.GetQuestions(context.Background(), "pt-BR")
		require.Error(t, err)
		assert.False(t, IsNetworkError(err))
	}
	assert.Equal(t, circuit.StateOpen, client.BreakerState())

	_, err := client.GetQuestions(context.Background(), "pt-BR")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Equal(t, 2, calls)

	now = now.Add(2 * time.Minute)
	_, err = client.GetQuestions(context.Background(), "pt-BR")
	require.Error(t, err)
	assert.Equal(t, 3, calls, "trial call admitted after cooldown")
}

func TestClientErrorsDoNotOpenCircuit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	for range 5 {
		_, _ = client.GetQuestions(context.Background(), "pt-BR")
	}
	assert.Equal(t, circuit.StateClosed, client.BreakerState())
}

func TestCallerCancellationDoesNotOpenCircuit(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode([]models.Question{})
	}))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for range 3 {
		_, err := client.GetQuestions(cancelled, "pt-BR")
		require.Error(t, err)
		assert.True(t, IsCanceled(err))
		assert.False(t, IsNetworkError(err))
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, circuit.StateClosed, client.BreakerState())

	questions, err := client.GetQuestions(context.Background(), "pt-BR")
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCircuitClosesAfterBackendRecovers(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("test",
		circuit.WithFailureThreshold(1),
		circuit.WithSuccessThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Question{})
	}), WithBreaker(breaker))

	_, err := client.GetQuestions(context.Background(), "pt-BR")
	require.Error(t, err)
	require.Equal(t, circuit.StateOpen, client.BreakerState())

	failing.Store(false)
	now = now.Add(time.Minute)

	_, err = client.GetQuestions(context.Background(), "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, circuit.StateOpen, client.BreakerState(), "one healthy call is not enough")

	_, err = client.GetQuestions(context.Background(), "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, circuit.StateClosed, client.BreakerState())
}

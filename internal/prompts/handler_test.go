package prompts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/callil/tax-ui/internal/prompts"
	"github.com/callil/tax-ui/pkg/routes"
)

type mockSystem struct {
	listFn         func(ctx context.Context, filters prompts.Filters) ([]prompts.Prompt, error)
	findFn         func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
	instructionsFn func(ctx context.Context, stage prompts.Stage) (string, error)
	createFn       func(ctx context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error)
	updateFn       func(ctx context.Context, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	activateFn     func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
	deactivateFn   func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
}

func (m *mockSystem) Handler() *prompts.Handler {
	return prompts.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (m *mockSystem) List(ctx context.Context, f prompts.Filters) ([]prompts.Prompt, error) {
	return m.listFn(ctx, f)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Instructions(ctx context.Context, stage prompts.Stage) (string, error) {
	return m.instructionsFn(ctx, stage)
}

func (m *mockSystem) Spec(ctx context.Context, stage prompts.Stage) (string, error) {
	return prompts.Spec(stage)
}

func (m *mockSystem) Create(ctx context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error) {
	return m.updateFn(ctx, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSystem) Activate(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.activateFn(ctx, id)
}

func (m *mockSystem) Deactivate(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.deactivateFn(ctx, id)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func samplePrompt() prompts.Prompt {
	return prompts.Prompt{
		ID:           uuid.MustParse("6f1c2a8e-4b7d-4e0a-9c3f-2d5e8a1b7c90"),
		Name:         "strict-classify",
		Stage:        prompts.StageClassify,
		Instructions: "Classify strictly.",
		Active:       true,
	}
}

func do(mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestHandlerList(t *testing.T) {
	var got prompts.Filters
	mux := setupMux(&mockSystem{
		listFn: func(_ context.Context, f prompts.Filters) ([]prompts.Prompt, error) {
			got = f
			return []prompts.Prompt{samplePrompt()}, nil
		},
	})

	rec := do(mux, "GET", "/prompts?stage=classify", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got.Stage == nil || *got.Stage != prompts.StageClassify {
		t.Errorf("filters = %+v", got)
	}

	var list []prompts.Prompt
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 || list[0].Name != "strict-classify" {
		t.Errorf("body = %+v", list)
	}
}

func TestHandlerFind(t *testing.T) {
	p := samplePrompt()
	mux := setupMux(&mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*prompts.Prompt, error) {
			if id != p.ID {
				return nil, prompts.ErrNotFound
			}
			return &p, nil
		},
	})

	tests := []struct {
		path string
		want int
	}{
		{"/prompts/" + p.ID.String(), http.StatusOK},
		{"/prompts/" + uuid.NewString(), http.StatusNotFound},
		{"/prompts/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		if rec := do(mux, "GET", tt.path, nil); rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestHandlerStageContent(t *testing.T) {
	mux := setupMux(&mockSystem{
		instructionsFn: func(_ context.Context, stage prompts.Stage) (string, error) {
			return "override for " + string(stage), nil
		},
	})

	rec := do(mux, "GET", "/prompts/extract/instructions", nil)
	var body prompts.StageContent
	json.NewDecoder(rec.Body).Decode(&body)
	if rec.Code != http.StatusOK || body.Content != "override for extract" {
		t.Errorf("instructions = %d %+v", rec.Code, body)
	}

	rec = do(mux, "GET", "/prompts/classify/spec", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("spec status = %d", rec.Code)
	}

	if rec := do(mux, "GET", "/prompts/enhance/spec", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown stage status = %d, want 400", rec.Code)
	}
}

func TestHandlerCreate(t *testing.T) {
	mux := setupMux(&mockSystem{
		createFn: func(_ context.Context, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
			if cmd.Name == "taken" {
				return nil, prompts.ErrDuplicate
			}
			p := samplePrompt()
			p.Name = cmd.Name
			return &p, nil
		},
	})

	tests := []struct {
		name string
		body any
		want int
	}{
		{"created", map[string]string{"name": "n", "stage": "classify", "instructions": "i"}, http.StatusCreated},
		{"duplicate", map[string]string{"name": "taken", "stage": "classify", "instructions": "i"}, http.StatusConflict},
		{"bad stage", map[string]string{"name": "n", "stage": "finalize", "instructions": "i"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(mux, "POST", "/prompts", tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerUpdateAndDelete(t *testing.T) {
	p := samplePrompt()
	mux := setupMux(&mockSystem{
		updateFn: func(_ context.Context, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error) {
			out := p
			out.Instructions = cmd.Instructions
			return &out, nil
		},
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id != p.ID {
				return prompts.ErrNotFound
			}
			return nil
		},
	})

	rec := do(mux, "PUT", "/prompts/"+p.ID.String(), map[string]string{"name": "n", "stage": "extract", "instructions": "new"})
	if rec.Code != http.StatusOK {
		t.Errorf("update status = %d", rec.Code)
	}

	if rec := do(mux, "DELETE", "/prompts/"+p.ID.String(), nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(mux, "DELETE", "/prompts/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Errorf("delete missing status = %d", rec.Code)
	}
}

func TestHandlerActivation(t *testing.T) {
	p := samplePrompt()
	mux := setupMux(&mockSystem{
		activateFn: func(_ context.Context, id uuid.UUID) (*prompts.Prompt, error) {
			out := p
			out.Active = true
			return &out, nil
		},
		deactivateFn: func(_ context.Context, id uuid.UUID) (*prompts.Prompt, error) {
			return nil, prompts.ErrNotFound
		},
	})

	rec := do(mux, "POST", "/prompts/"+p.ID.String()+"/activate", nil)
	var got prompts.Prompt
	json.NewDecoder(rec.Body).Decode(&got)
	if rec.Code != http.StatusOK || !got.Active {
		t.Errorf("activate = %d %+v", rec.Code, got)
	}

	if rec := do(mux, "POST", "/prompts/"+p.ID.String()+"/deactivate", nil); rec.Code != http.StatusNotFound {
		t.Errorf("deactivate status = %d, want 404", rec.Code)
	}
}

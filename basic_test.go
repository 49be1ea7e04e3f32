package authgate

import (
	"context"
	"errors"
	"testing"

	"github.com/devlucky14/authgate/password"
)

type fakeRequest struct {
	headers map[string]string
	cookies map[string]string
	path    string
}

func (f fakeRequest) Header(name string) string {
	return f.headers[name]
}

func (f fakeRequest) Cookie(name string) (string, bool) {
	v, ok := f.cookies[name]
	return v, ok
}

func (f fakeRequest) Path() string {
	return f.path
}

type fakeProvider struct {
	byEmail map[string]*Principal
	byID    map[string]*Principal
	err     error
}

func (f *fakeProvider) GetUserByEmail(_ context.Context, email string) (*Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeProvider) GetUserByID(_ context.Context, id string) (*Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func newBasicTest(t *testing.T) (*BasicStrategy, *fakeProvider) {
	t.Helper()

	hasher, err := password.NewBcrypt(password.Config{Cost: 4})
	if err != nil {
		t.Fatalf("bcrypt setup failed: %v", err)
	}
	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	user := &Principal{ID: "u1", Email: "a@x.com", PasswordHash: hash}
	provider := &fakeProvider{
		byEmail: map[string]*Principal{user.Email: user},
		byID:    map[string]*Principal{user.ID: user},
	}

	return NewBasicStrategy("Basic", provider, hasher), provider
}

func TestBasicIdentify(t *testing.T) {
	strategy, _ := newBasicTest(t)

	req := fakeRequest{headers: map[string]string{
		"Authorization": basicHeader("a@x.com:secret"),
	}}

	user, err := strategy.Identify(context.Background(), req)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("wrong principal: %+v", user)
	}
}

func TestBasicIdentifyCollapsesRejections(t *testing.T) {
	strategy, _ := newBasicTest(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer abc"},
		{"bad base64", "Basic !!!"},
		{"no separator", basicHeader("nodivider")},
		{"unknown user", basicHeader("ghost@x.com:secret")},
		{"wrong password", basicHeader("a@x.com:nope")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := fakeRequest{headers: map[string]string{}}
			if tc.header != "" {
				req.headers["Authorization"] = tc.header
			}

			user, err := strategy.Identify(context.Background(), req)
			if user != nil {
				t.Fatalf("principal resolved: %+v", user)
			}
			if !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("got %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestBasicIdentifyBackendFault(t *testing.T) {
	strategy, provider := newBasicTest(t)
	provider.err = errors.New("database down")

	req := fakeRequest{headers: map[string]string{
		"Authorization": basicHeader("a@x.com:secret"),
	}}

	_, err := strategy.Identify(context.Background(), req)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("got %v, want ErrBackendUnavailable", err)
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("backend fault collapsed into rejection: %v", err)
	}
}

func TestBasicIdentifyStageMetrics(t *testing.T) {
	strategy, _ := newBasicTest(t)
	strategy.metrics = NewMetrics(MetricsConfig{Enabled: true})

	reqs := []struct {
		header string
		metric MetricID
	}{
		{"", MetricBasicMalformedHeader},
		{"Basic !!!", MetricBasicDecodeFailed},
		{basicHeader("nodivider"), MetricBasicMalformedCredentials},
		{basicHeader("ghost@x.com:secret"), MetricBasicUnknownUser},
		{basicHeader("a@x.com:nope"), MetricBasicBadPassword},
	}

	for _, r := range reqs {
		req := fakeRequest{headers: map[string]string{}}
		if r.header != "" {
			req.headers["Authorization"] = r.header
		}
		_, _ = strategy.Identify(context.Background(), req)

		if got := strategy.metrics.Value(r.metric); got != 1 {
			t.Fatalf("metric %d = %d, want 1", r.metric, got)
		}
	}
}

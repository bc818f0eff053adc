package fetch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/five82/phrasebook/internal/phrases"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedFetcher blocks each call until the test releases it for that URL.
type gatedFetcher struct {
	mu    sync.Mutex
	gates map[string]chan reply
	calls atomic.Int32
}

type reply struct {
	data *phrases.Collection
	err  error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gates: make(map[string]chan reply)}
}

func (f *gatedFetcher) gate(url string) chan reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.gates[url]
	if !ok {
		ch = make(chan reply, 1)
		f.gates[url] = ch
	}
	return ch
}

func (f *gatedFetcher) FetchCollection(ctx context.Context, url string) (*phrases.Collection, error) {
	f.calls.Add(1)
	select {
	case r := <-f.gate(url):
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func collection(english ...string) *phrases.Collection {
	c := &phrases.Collection{TotalPhrases: len(english)}
	for _, e := range english {
		c.Phrases = append(c.Phrases, phrases.Phrase{EnglishText: e})
	}
	return c
}

func runAsync(req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() { out <- req.Run() }()
	return out
}

func TestController_InitialStateIsLoading(t *testing.T) {
	c := New(newGatedFetcher(), Hooks{}, zerolog.Nop())
	if st := c.State(); !st.Loading || st.Err != "" || st.Data != nil {
		t.Fatalf("initial state = %#v, want loading only", st)
	}
}

func TestController_SuccessTransition(t *testing.T) {
	f := newGatedFetcher()
	var succeeded, completed int
	c := New(f, Hooks{
		OnSuccess:  func(*phrases.Collection) { succeeded++ },
		OnComplete: func() { completed++ },
	}, zerolog.Nop())

	req, ok := c.Load(context.Background(), "/phrases-praise-0.json")
	if !ok {
		t.Fatalf("Load vetoed unexpectedly")
	}
	if !c.InFlight() || !c.State().Loading {
		t.Fatalf("state after Load = %#v, want loading and in flight", c.State())
	}

	want := collection("In the name of Allah")
	f.gate("/phrases-praise-0.json") <- reply{data: want}
	if !c.Apply(req.Run()) {
		t.Fatalf("Apply discarded the current result")
	}

	st := c.State()
	if st.Loading || st.Err != "" {
		t.Fatalf("state = %#v, want loaded", st)
	}
	if diff := cmp.Diff(want, st.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if succeeded != 1 || completed != 1 {
		t.Fatalf("hooks ran success=%d complete=%d, want 1/1", succeeded, completed)
	}
	if c.InFlight() {
		t.Fatalf("InFlight after apply = true")
	}
}

func TestController_LastRequestWins(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, Hooks{}, zerolog.Nop())
	ctx := context.Background()

	urls := []string{"/a.json", "/b.json", "/c.json", "/d.json"}
	var results []<-chan Result
	for _, u := range urls {
		req, ok := c.Load(ctx, u)
		if !ok {
			t.Fatalf("Load(%s) vetoed", u)
		}
		results = append(results, runAsync(req))
	}

	// Superseded requests were cancelled; their results are discarded.
	for i := 0; i < len(urls)-1; i++ {
		res := <-results[i]
		if !errors.Is(res.Err, context.Canceled) {
			t.Fatalf("result %d err = %v, want context.Canceled", i, res.Err)
		}
		if c.Apply(res) {
			t.Fatalf("Apply accepted superseded result for %s", res.URL)
		}
		if st := c.State(); !st.Loading || st.Err != "" {
			t.Fatalf("state changed by stale result: %#v", st)
		}
	}

	f.gate("/d.json") <- reply{data: collection("last")}
	if !c.Apply(<-results[len(results)-1]) {
		t.Fatalf("Apply discarded the latest result")
	}
	if got := c.State().Data.Phrases[0].EnglishText; got != "last" {
		t.Fatalf("data from %q, want last", got)
	}
}

func TestController_LateResultFromSupersededRequestIsDiscarded(t *testing.T) {
	// A fetcher that ignores cancellation and answers late.
	c := New(nil, Hooks{}, zerolog.Nop())
	first, _ := c.Load(context.Background(), "/slow.json")
	second, _ := c.Load(context.Background(), "/fast.json")

	if !c.Apply(Result{URL: second.URL, seq: second.seq, Data: collection("fast")}) {
		t.Fatalf("Apply discarded the latest result")
	}
	if c.Apply(Result{URL: first.URL, seq: first.seq, Data: collection("slow")}) {
		t.Fatalf("Apply accepted a superseded result")
	}
	if got := c.State().Data.Phrases[0].EnglishText; got != "fast" {
		t.Fatalf("data = %q, want fast", got)
	}
}

func TestController_ErrorTransition(t *testing.T) {
	f := newGatedFetcher()
	var gotErr error
	c := New(f, Hooks{OnError: func(err error) { gotErr = err }}, zerolog.Nop())

	req, _ := c.Load(context.Background(), "/missing.json")
	f.gate("/missing.json") <- reply{err: &phrases.StatusError{Code: 404, Status: "404 Not Found"}}
	if !c.Apply(req.Run()) {
		t.Fatalf("Apply discarded error result")
	}
	st := c.State()
	if st.Loading || !strings.Contains(st.Err, "404") || st.Data != nil {
		t.Fatalf("state = %#v, want error containing 404", st)
	}
	if gotErr == nil {
		t.Fatalf("OnError not called")
	}
}

func TestController_ErrorClearsPreviousData(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, Hooks{}, zerolog.Nop())

	req, _ := c.Load(context.Background(), "/x.json")
	f.gate("/x.json") <- reply{data: collection("one")}
	c.Apply(req.Run())

	req, _ = c.Refetch(context.Background())
	if st := c.State(); !st.Loading || st.Err != "" {
		t.Fatalf("refetch state = %#v, want loading", st)
	}
	f.gate("/x.json") <- reply{err: errors.New("connection refused")}
	c.Apply(req.Run())
	if st := c.State(); st.Data != nil || st.Err != "connection refused" {
		t.Fatalf("state = %#v, want error only", st)
	}
}

func TestController_VetoIssuesNothing(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, Hooks{BeforeRequest: func(string) bool { return true }}, zerolog.Nop())
	before := c.State()

	if _, ok := c.Load(context.Background(), "/phrases-praise-0.json"); ok {
		t.Fatalf("Load not vetoed")
	}
	if _, ok := c.Refetch(context.Background()); ok {
		t.Fatalf("Refetch not vetoed")
	}
	if f.calls.Load() != 0 {
		t.Fatalf("fetcher called %d times, want 0", f.calls.Load())
	}
	if diff := cmp.Diff(before, c.State()); diff != "" {
		t.Fatalf("state changed on veto (-before +after):\n%s", diff)
	}
	if c.InFlight() {
		t.Fatalf("InFlight after veto")
	}
}

func TestController_VetoSupersedesEarlierRequest(t *testing.T) {
	f := newGatedFetcher()
	veto := false
	c := New(f, Hooks{BeforeRequest: func(string) bool { return veto }}, zerolog.Nop())

	req, _ := c.Load(context.Background(), "/a.json")
	pending := runAsync(req)
	veto = true
	if _, ok := c.Load(context.Background(), "/b.json"); ok {
		t.Fatalf("Load not vetoed")
	}
	if c.Apply(<-pending) {
		t.Fatalf("Apply accepted a request superseded by a veto")
	}
}

func TestController_CloseCancelsSilently(t *testing.T) {
	f := newGatedFetcher()
	var errorsSeen int
	c := New(f, Hooks{OnError: func(error) { errorsSeen++ }}, zerolog.Nop())

	req, _ := c.Load(context.Background(), "/a.json")
	pending := runAsync(req)
	c.Close()

	res := <-pending
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", res.Err)
	}
	if c.Apply(res) {
		t.Fatalf("Apply accepted result after Close")
	}
	if errorsSeen != 0 || c.State().Err != "" {
		t.Fatalf("cancellation surfaced as an error")
	}
}

func TestController_SetHooksReissues(t *testing.T) {
	f := newGatedFetcher()
	c := New(f, Hooks{}, zerolog.Nop())
	first, _ := c.Load(context.Background(), "/a.json")

	var succeeded bool
	second, ok := c.SetHooks(context.Background(), Hooks{OnSuccess: func(*phrases.Collection) { succeeded = true }})
	if !ok {
		t.Fatalf("SetHooks vetoed")
	}
	if second.URL != "/a.json" {
		t.Fatalf("reissued URL = %q, want /a.json", second.URL)
	}
	if res := first.Run(); c.Apply(res) {
		t.Fatalf("Apply accepted result from before the hook change")
	}
	f.gate("/a.json") <- reply{data: collection("x")}
	c.Apply(second.Run())
	if !succeeded {
		t.Fatalf("new OnSuccess hook not used")
	}
}

func TestRequest_ZeroValueRun(t *testing.T) {
	if res := (Request{}).Run(); res.Err == nil {
		t.Fatalf("zero Request.Run returned nil error")
	}
}

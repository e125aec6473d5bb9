package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BTreeMap/CoverageGuide/internal/genai"
	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// PortraitRequest is one portrait generation stamped with the token current when it was issued.
type PortraitRequest struct {
	Token uint64
	genai.ImageRequest
}

// PortraitPrompt builds the image prompt for a scenario's customer.
func PortraitPrompt(sc models.Scenario) string {
	return fmt.Sprintf("A professional, realistic portrait of a customer for an insurance app. Character: %s. Context: %s. Style: Cinematic, high quality, soft lighting, close-up.", sc.Title, sc.CustomerProfile)
}

// PortraitLoader runs portrait requests against the image collaborator.
type PortraitLoader struct {
	gen genai.ImageGenerator
}

// NewPortraitLoader wraps gen. A nil generator yields a loader that is never available.
func NewPortraitLoader(gen genai.ImageGenerator) *PortraitLoader {
	return &PortraitLoader{gen: gen}
}

// Available reports whether portraits can be generated at all.
func (l *PortraitLoader) Available() bool {
	return l != nil && l.gen != nil
}

// Load performs the request. It blocks until the collaborator answers.
func (l *PortraitLoader) Load(ctx context.Context, req PortraitRequest) (genai.Image, error) {
	if !l.Available() {
		return genai.Image{}, genai.ErrAPIKeyMissing
	}
	slog.Debug("PortraitLoader.Load: requesting portrait", "token", req.Token)
	return l.gen.GenerateImage(ctx, req.ImageRequest)
}

// StartPortrait issues a new generation token for the current scenario. When no generator is
// available the portrait becomes unavailable and ok is false.
func (s *ScenarioSession) StartPortrait(available bool) (req PortraitRequest, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) == 0 {
		return PortraitRequest{}, false
	}
	sc := s.current()
	p := &s.progress.Portrait
	p.Token++
	s.image = ""
	p.Placeholder = sc.Icon
	if !available {
		p.Status = models.PortraitUnavailable
		return PortraitRequest{}, false
	}
	p.Status = models.PortraitGenerating
	return PortraitRequest{
		Token:        p.Token,
		ImageRequest: genai.ImageRequest{Prompt: PortraitPrompt(sc), AspectRatio: genai.AspectSquare},
	}, true
}

// ApplyPortrait records the outcome of a portrait request. Results whose token is no longer
// current are discarded and false is returned.
func (s *ScenarioSession) ApplyPortrait(token uint64, img genai.Image, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.progress.Portrait
	if token != p.Token {
		slog.Debug("ScenarioSession.ApplyPortrait: discarding stale portrait", "token", token, "current", p.Token)
		return false
	}
	if err != nil {
		slog.Error("ScenarioSession.ApplyPortrait: portrait generation failed", "token", token, "error", err)
		p.Status = models.PortraitUnavailable
		s.image = ""
		return true
	}
	p.Status = models.PortraitReady
	s.image = img.DataURI()
	return true
}

// Image returns the data URI of the ready portrait, or "".
func (s *ScenarioSession) Image() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// RestoreImage reattaches an image kept outside the saved progress. It is ignored unless the
// portrait is ready and token is current.
func (s *ScenarioSession) RestoreImage(token uint64, uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.progress.Portrait
	if p.Status == models.PortraitReady && p.Token == token {
		s.image = uri
	}
}

// PortraitView is the portrait state together with the generated image.
type PortraitView struct {
	models.PortraitState
	Image string `json:"image,omitempty"` // data URI
}

type cachedPortrait struct {
	token uint64
	uri   string
}

// portraitCache keeps generated images per session so saved records stay small.
type portraitCache struct {
	mu      sync.Mutex
	entries map[string]cachedPortrait
}

func newPortraitCache() *portraitCache {
	return &portraitCache{entries: make(map[string]cachedPortrait)}
}

func (c *portraitCache) put(id string, token uint64, uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = cachedPortrait{token: token, uri: uri}
}

func (c *portraitCache) get(id string) (cachedPortrait, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	return e, ok
}

func (c *portraitCache) drop(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

func (c *portraitCache) ids() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	return ids
}

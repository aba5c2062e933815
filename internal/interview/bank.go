package interview

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"intervai/internal/models"
)

//go:embed bank.yaml
var bankYAML []byte

// bankFile mirrors the embedded corpus layout.
type bankFile struct {
	Domains  []domainSpec `yaml:"domains"`
	Families []familySpec `yaml:"families"`
}

// domainSpec holds template pools for one named professional domain, keyed
// by difficulty level then category.
type domainSpec struct {
	Name      string                         `yaml:"name"`
	Keywords  []string                       `yaml:"keywords"`
	Templates map[string]map[string][]string `yaml:"templates"`
}

// familySpec holds one fixed sentence per difficulty level for a broad
// domain family.
type familySpec struct {
	Name      string            `yaml:"name"`
	Keywords  []string          `yaml:"keywords"`
	Templates map[string]string `yaml:"templates"`
}

// Bank generates interview questions locally. It is deterministic in the
// sense the engine needs: it never fails and never touches the network.
type Bank struct {
	mu     sync.Mutex
	rng    *rand.Rand
	corpus bankFile
}

func NewBank(seed int64) (*Bank, error) {
	var corpus bankFile
	if err := yaml.Unmarshal(bankYAML, &corpus); err != nil {
		return nil, fmt.Errorf("parse question corpus: %w", err)
	}
	if len(corpus.Domains) == 0 || len(corpus.Families) == 0 {
		return nil, fmt.Errorf("question corpus is empty")
	}
	return &Bank{
		rng:    rand.New(rand.NewSource(seed)),
		corpus: corpus,
	}, nil
}

// Generate produces a question for (domain, level, category), preferring
// domain-specialized templates, then a generic domain-family sentence, then
// the ultimate fallback. isRepeat filters the specialized pool; the generic
// tiers are single fixed sentences and are returned even when previously
// seen. The caller commits the result to the session and the repetition
// registry.
func (b *Bank) Generate(domain string, level models.Level, category models.Category, isRepeat func(string) bool) string {
	subject := strings.TrimSpace(domain)
	if subject == "" {
		subject = "your field"
	}

	if q, ok := b.fromDomainPool(subject, level, category, isRepeat); ok {
		return q
	}
	if q, ok := b.fromFamily(subject, level); ok {
		return q
	}
	return fmt.Sprintf("Ask me one %s %s interview question about %s.", level, category, subject)
}

func (b *Bank) fromDomainPool(subject string, level models.Level, category models.Category, isRepeat func(string) bool) (string, bool) {
	spec, ok := b.matchDomain(subject)
	if !ok {
		return "", false
	}
	pool := spec.Templates[string(level)][string(category)]
	if len(pool) == 0 {
		return "", false
	}

	b.mu.Lock()
	order := b.rng.Perm(len(pool))
	b.mu.Unlock()

	for _, i := range order {
		candidate := fmt.Sprintf(pool[i], subject)
		if isRepeat != nil && isRepeat(candidate) {
			continue
		}
		return candidate, true
	}
	// Pool exhausted, next tier takes over.
	return "", false
}

func (b *Bank) fromFamily(subject string, level models.Level) (string, bool) {
	lower := strings.ToLower(subject)
	for i := range b.corpus.Families {
		fam := &b.corpus.Families[i]
		for _, kw := range fam.Keywords {
			if strings.Contains(lower, kw) {
				tpl, ok := fam.Templates[string(level)]
				if !ok {
					return "", false
				}
				return fmt.Sprintf(tpl, subject), true
			}
		}
	}
	return "", false
}

func (b *Bank) matchDomain(subject string) (*domainSpec, bool) {
	lower := strings.ToLower(subject)
	for i := range b.corpus.Domains {
		spec := &b.corpus.Domains[i]
		if strings.Contains(lower, spec.Name) {
			return spec, true
		}
		for _, kw := range spec.Keywords {
			if strings.Contains(lower, kw) {
				return spec, true
			}
		}
	}
	return nil, false
}

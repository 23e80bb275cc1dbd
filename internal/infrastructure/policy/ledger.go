// Package policy persists the allow/deny ledger that gates automatic command
// execution. Pattern-matching semantics live in the domain package.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/pkg/atomicfile"
	"github.com/wtf-sh/wtf/internal/ports"
)

// FileLedger keeps allow and deny rules in a YAML document
// (~/.wtf/policy.yaml), updated via read-modify-atomic-replace.
type FileLedger struct {
	path   string
	logger ports.Logger

	mu     sync.Mutex
	loaded bool
	allow  []domain.PolicyRule
	deny   []domain.PolicyRule
	now    func() time.Time
}

type document struct {
	Allow []domain.PolicyRule `yaml:"allow"`
	Deny  []domain.PolicyRule `yaml:"deny"`
}

// NewFileLedger builds a ledger backed by the given path.
func NewFileLedger(path string, logger ports.Logger) *FileLedger {
	return &FileLedger{path: path, logger: logger, now: time.Now}
}

// Classify tests command against the stored rules. Most specific pattern
// wins; ties go to the most recently created rule. A pattern found on both
// lists is treated as Deny and the inconsistency is logged.
func (l *FileLedger) Classify(command string) (domain.ClassifyResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.load(); err != nil {
		return domain.ClassifyResult{}, err
	}

	conflicted := l.logConflicts()

	best := domain.ClassifyResult{Class: domain.ClassUnknown}
	bestSpec := 0
	consider := func(rule domain.PolicyRule, class domain.Classification) {
		if !domain.MatchPattern(rule.Pattern, command) {
			return
		}
		spec := domain.PatternSpecificity(rule.Pattern)
		if spec < bestSpec {
			return
		}
		if spec == bestSpec && !rule.CreatedAt.After(best.Rule.CreatedAt) {
			return
		}
		bestSpec = spec
		best = domain.ClassifyResult{Class: class, Rule: rule}
	}
	for _, rule := range l.deny {
		rule.Disposition = domain.DispositionDeny
		consider(rule, domain.ClassDenied)
	}
	for _, rule := range l.allow {
		if conflicted[rule.Pattern] {
			// Pattern also on the deny list: deny is authoritative.
			continue
		}
		rule.Disposition = domain.DispositionAllow
		consider(rule, domain.ClassAllowed)
	}
	return best, nil
}

// RecordDecision upserts a rule, removing any conflicting rule for the same
// pattern on the opposite list.
func (l *FileLedger) RecordDecision(pattern string, disposition domain.RuleDisposition) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.load(); err != nil {
		return err
	}

	rule := domain.PolicyRule{Pattern: pattern, Disposition: disposition, CreatedAt: l.now()}
	l.allow = removePattern(l.allow, pattern)
	l.deny = removePattern(l.deny, pattern)
	switch disposition {
	case domain.DispositionAllow:
		l.allow = append(l.allow, rule)
	case domain.DispositionDeny:
		l.deny = append(l.deny, rule)
	default:
		return fmt.Errorf("unknown disposition: %s", disposition)
	}
	return l.persist()
}

// RemovePattern drops the pattern from whichever list holds it.
func (l *FileLedger) RemovePattern(pattern string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.load(); err != nil {
		return err
	}
	before := len(l.allow) + len(l.deny)
	l.allow = removePattern(l.allow, pattern)
	l.deny = removePattern(l.deny, pattern)
	if len(l.allow)+len(l.deny) == before {
		return nil
	}
	return l.persist()
}

// Rules returns copies of both lists for display.
func (l *FileLedger) Rules() ([]domain.PolicyRule, []domain.PolicyRule, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.load(); err != nil {
		return nil, nil, err
	}
	allow := make([]domain.PolicyRule, len(l.allow))
	copy(allow, l.allow)
	deny := make([]domain.PolicyRule, len(l.deny))
	copy(deny, l.deny)
	for i := range allow {
		allow[i].Disposition = domain.DispositionAllow
	}
	for i := range deny {
		deny[i].Disposition = domain.DispositionDeny
	}
	return allow, deny, nil
}

// Reset clears all rules.
func (l *FileLedger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = true
	l.allow = nil
	l.deny = nil
	return l.persist()
}

// Path returns the backing file path.
func (l *FileLedger) Path() string {
	return l.path
}

func (l *FileLedger) load() error {
	if l.loaded {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.loaded = true
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", domain.ErrStoreUnavailable, l.path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		if l.logger != nil {
			l.logger.Warn("policy file is corrupt, running with an empty ledger", map[string]interface{}{
				"path":  l.path,
				"error": err.Error(),
			})
		}
		l.loaded = true
		return nil
	}
	l.allow = dedupe(doc.Allow)
	l.deny = dedupe(doc.Deny)
	l.loaded = true
	return nil
}

func (l *FileLedger) persist() error {
	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	raw, err := yaml.Marshal(document{Allow: l.allow, Deny: l.deny})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := atomicfile.WriteFile(l.path, raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStoreUnavailable, l.path, err)
	}
	return nil
}

// logConflicts reports patterns found on both lists and returns them.
// RecordDecision keeps the mutual-exclusion invariant, so this only fires on
// hand-edited or badly merged files.
func (l *FileLedger) logConflicts() map[string]bool {
	denied := make(map[string]bool, len(l.deny))
	for _, rule := range l.deny {
		denied[rule.Pattern] = true
	}
	conflicted := map[string]bool{}
	for _, rule := range l.allow {
		if denied[rule.Pattern] {
			conflicted[rule.Pattern] = true
			if l.logger != nil {
				l.logger.Warn("policy conflict, deny wins", map[string]interface{}{
					"pattern": rule.Pattern,
					"error":   domain.ErrPolicyConflict.Error(),
				})
			}
		}
	}
	return conflicted
}

func removePattern(rules []domain.PolicyRule, pattern string) []domain.PolicyRule {
	kept := rules[:0]
	for _, rule := range rules {
		if rule.Pattern == pattern {
			continue
		}
		kept = append(kept, rule)
	}
	return kept
}

func dedupe(rules []domain.PolicyRule) []domain.PolicyRule {
	seen := make(map[string]bool, len(rules))
	var out []domain.PolicyRule
	for _, rule := range rules {
		if seen[rule.Pattern] {
			continue
		}
		seen[rule.Pattern] = true
		out = append(out, rule)
	}
	return out
}

var _ ports.PolicyLedger = (*FileLedger)(nil)

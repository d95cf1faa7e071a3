package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	gitignore "github.com/sabhiram/go-gitignore"
	zap "go.uber.org/zap"
	errgroup "golang.org/x/sync/errgroup"
)

// ScannerService walks files and directories and converts readable text into an exact
// token count. It holds no per-scan state and is safe for concurrent use.
type ScannerService struct {
	root             string
	ignoreDirs       map[string]struct{}
	ignoreExtensions map[string]struct{}
	respectGitignore bool
	maxFileBytes     int64
	workers          int
	counter          domain.TokenCounter
}

// NewScannerService creates a scanner from the scanner configuration.
func NewScannerService(cfg config.ScannerConfig, counter domain.TokenCounter) *ScannerService {
	s := &ScannerService{
		root:             cfg.Root,
		ignoreDirs:       make(map[string]struct{}, len(cfg.IgnoreDirs)),
		ignoreExtensions: make(map[string]struct{}, len(cfg.IgnoreExtensions)),
		respectGitignore: cfg.RespectGitignore,
		maxFileBytes:     cfg.MaxFileBytes,
		workers:          cfg.Workers,
		counter:          counter,
	}
	if s.workers < 1 {
		s.workers = 1
	}

	for _, dir := range cfg.IgnoreDirs {
		s.ignoreDirs[dir] = struct{}{}
	}
	for _, ext := range cfg.IgnoreExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ignoreExtensions[ext] = struct{}{}
	}

	return s
}

// Scan measures every path and returns the element-wise sum of the per-path results.
// Missing or unreadable targets count as one skipped unit each; Scan never fails.
func (s *ScannerService) Scan(ctx context.Context, paths ...string) domain.ScanResult {
	log := logger.L(ctx)

	var sem chan struct{}
	if s.workers > 1 {
		sem = make(chan struct{}, s.workers-1)
	}

	var total domain.ScanResult
	for _, path := range paths {
		run := &scanRun{
			svc:     s,
			log:     log,
			sem:     sem,
			visited: make(map[string]struct{}),
		}
		total = total.Add(run.scanPath(s.resolve(path), nil))
	}

	log.Debug("scan complete",
		zap.Int("targets", len(paths)),
		zap.Int("tokens", total.Tokens),
		zap.Int("files_counted", total.FilesCounted),
		zap.Int("files_skipped", total.FilesSkipped))
	return total
}

// resolve interprets relative targets against the configured root or the working directory.
func (s *ScannerService) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	root := s.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Clean(path)
		}
		root = wd
	}
	return filepath.Join(root, path)
}

// ignoreRules is a .gitignore compiled for the directory it was found in.
type ignoreRules struct {
	base    string
	matcher *gitignore.GitIgnore
}

// scanRun is the traversal state of one scan target.
type scanRun struct {
	svc *ScannerService
	log *zap.Logger
	sem chan struct{}

	mu      sync.Mutex
	visited map[string]struct{}
}

// firstVisit records the real path of an entry and reports whether it is new.
// Symlinks that lead back into an already scanned tree are not followed twice.
func (r *scanRun) firstVisit(path string) bool {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		real = path
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.visited[real]; seen {
		return false
	}
	r.visited[real] = struct{}{}
	return true
}

func (r *scanRun) scanPath(path string, rules []ignoreRules) domain.ScanResult {
	info, err := os.Stat(path)
	if err != nil {
		r.log.Debug("skipping missing target", zap.String("path", path), zap.Error(err))
		return domain.SkippedUnit()
	}

	if info.IsDir() {
		if _, ignored := r.svc.ignoreDirs[filepath.Base(path)]; ignored {
			r.log.Debug("ignoring directory by name", zap.String("path", path))
			return domain.ScanResult{}
		}
		if !r.firstVisit(path) {
			r.log.Debug("directory already visited", zap.String("path", path))
			return domain.ScanResult{}
		}
		return r.scanDir(path, rules)
	}

	if !r.firstVisit(path) {
		return domain.ScanResult{}
	}
	return r.scanFile(path, info)
}

func (r *scanRun) scanDir(dir string, rules []ignoreRules) domain.ScanResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.log.Debug("skipping unreadable directory", zap.String("path", dir), zap.Error(err))
		return domain.SkippedUnit()
	}

	if r.svc.respectGitignore {
		rules = r.loadGitignore(dir, rules)
	}

	results := make([]domain.ScanResult, len(entries))
	var g errgroup.Group

	for i, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if len(rules) > 0 && matchesIgnoreRules(rules, path, entry.IsDir()) {
			if !entry.IsDir() {
				results[i] = domain.SkippedUnit()
			}
			continue
		}

		if entry.IsDir() && r.acquire() {
			g.Go(func() error {
				defer r.release()
				results[i] = r.scanPath(path, rules)
				return nil
			})
			continue
		}

		results[i] = r.scanPath(path, rules)
	}
	_ = g.Wait()

	var total domain.ScanResult
	for _, result := range results {
		total = total.Add(result)
	}
	return total
}

func (r *scanRun) scanFile(path string, info os.FileInfo) domain.ScanResult {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ignored := r.svc.ignoreExtensions[ext]; ignored {
		return domain.SkippedUnit()
	}

	if r.svc.maxFileBytes > 0 && info.Size() > r.svc.maxFileBytes {
		r.log.Debug("skipping oversized file", zap.String("path", path), zap.Int64("size", info.Size()))
		return domain.SkippedUnit()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		r.log.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return domain.SkippedUnit()
	}

	if bytes.IndexByte(content, 0) >= 0 || !utf8.Valid(content) {
		r.log.Debug("skipping binary file", zap.String("path", path))
		return domain.SkippedUnit()
	}

	return domain.ScanResult{
		Tokens:       r.svc.counter.CountTokens(string(content)),
		FilesCounted: 1,
	}
}

// acquire reserves a worker for a sibling directory. It never blocks: without a free
// worker the caller scans inline, so nested directories cannot starve each other.
func (r *scanRun) acquire() bool {
	if r.sem == nil {
		return false
	}
	select {
	case r.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

func (r *scanRun) release() {
	<-r.sem
}

func (r *scanRun) loadGitignore(dir string, rules []ignoreRules) []ignoreRules {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return rules
	}

	matcher, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		r.log.Debug("could not parse .gitignore", zap.String("path", path), zap.Error(err))
		return rules
	}

	next := make([]ignoreRules, len(rules), len(rules)+1)
	copy(next, rules)
	return append(next, ignoreRules{base: dir, matcher: matcher})
}

func matchesIgnoreRules(rules []ignoreRules, path string, isDir bool) bool {
	for _, rule := range rules {
		rel, err := filepath.Rel(rule.base, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			rel += "/"
		}
		if rule.matcher.MatchesPath(rel) {
			return true
		}
	}
	return false
}

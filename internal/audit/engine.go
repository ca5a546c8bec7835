// Package audit runs the accessibility audit pipeline: dependency probe,
// page load, axe-core run, supplementary checks and reporting.
package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"a11yaudit/internal/axe"
	"a11yaudit/internal/browser"
	"a11yaudit/internal/config"
	gh "a11yaudit/internal/github"
	"a11yaudit/internal/log"
	"a11yaudit/internal/output"
	"a11yaudit/internal/rules"

	"github.com/google/go-github/v81/github"
	"golang.org/x/sync/errgroup"
)

const publishTimeout = 15 * time.Second

// Session is a loaded browser tab.
type Session interface {
	browser.Page
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	Close() error
}

// StatusPublisher publishes the audit outcome as a commit status.
type StatusPublisher interface {
	PublishStatus(ctx context.Context, s gh.Status) (*github.RepoStatus, error)
}

type Engine struct {
	Stdout io.Writer
	Stderr io.Writer

	// Seams for tests. Zero values use the real implementations.
	Probe        func(cfg *config.Config) Availability
	Launch       func(ctx context.Context, opts browser.Options) (Session, error)
	Checks       func() []rules.Check
	NewPublisher func(ctx context.Context) (StatusPublisher, error)
	Now          func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Probe:        Probe,
		Launch:       launchChrome,
		Checks:       rules.List,
		NewPublisher: newGitHubPublisher,
		Now:          time.Now,
	}
}

func launchChrome(ctx context.Context, opts browser.Options) (Session, error) {
	s, err := browser.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newGitHubPublisher(ctx context.Context) (StatusPublisher, error) {
	token, source, err := gh.ResolveAuthToken(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("resolve GitHub auth token: %w", err)
	}
	if token == "" {
		return nil, errors.New("GitHub auth token is required (set GITHUB_TOKEN or run 'gh auth login')")
	}
	log.Debug("resolved GitHub token", "source", string(source))
	return gh.NewClient(ctx, token, gh.WithLogger(log.Logger()))
}

// Run executes one audit and returns the process exit code:
// 0 when the page is clean or the audit could not run for lack of
// dependencies, 1 on violations or any error.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	e.defaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
	defer cancel()

	if err := applyCheckOptions(cfg); err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return 1
	}

	avail := e.Probe(cfg)
	if !avail.Available() {
		for _, r := range avail.Reasons {
			log.Debug("dependency missing", "reason", r)
		}
		if err := output.PrintUnavailable(e.Stdout, avail.Reasons); err != nil {
			fmt.Fprintf(e.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	target, err := config.NormalizeURL(cfg.Target.URL)
	if err != nil {
		fmt.Fprintf(e.Stderr, "Error: invalid target URL: %v\n", err)
		return 1
	}
	cfg.Target.URL = target

	report, err := e.audit(ctx, cfg, avail)
	if err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		e.publish(ctx, cfg, gh.StateError, "Audit failed: "+err.Error())
		return 1
	}

	// Sinks are opened only once there is a report, so a failed audit leaves
	// no partial output files behind.
	outMgr, err := setupOutputManager(cfg, e.Stdout)
	if err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return 1
	}

	writeErr := outMgr.Write(report)
	closeErr := outMgr.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		fmt.Fprintf(e.Stderr, "Error: %v\n", err)
		return 1
	}

	state, desc := statusFor(report)
	e.publish(ctx, cfg, state, desc)

	return report.ExitCode
}

func (e *Engine) defaults() {
	d := NewEngine()
	if e.Stdout == nil {
		e.Stdout = d.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = d.Stderr
	}
	if e.Probe == nil {
		e.Probe = d.Probe
	}
	if e.Launch == nil {
		e.Launch = d.Launch
	}
	if e.Checks == nil {
		e.Checks = d.Checks
	}
	if e.NewPublisher == nil {
		e.NewPublisher = d.NewPublisher
	}
	if e.Now == nil {
		e.Now = d.Now
	}
}

// audit loads the page and collects everything the report needs. The browser
// is closed before it returns, on every path.
func (e *Engine) audit(ctx context.Context, cfg *config.Config, avail Availability) (*output.Report, error) {
	source, err := axe.LoadSource(avail.AxeSource)
	if err != nil {
		return nil, err
	}

	width, height, err := config.ParseWindowSize(cfg.Browser.WindowSize)
	if err != nil {
		return nil, err
	}

	log.Debug("launching browser", "path", avail.ChromePath, "headless", !cfg.Browser.Headed)
	sess, err := e.Launch(ctx, browser.Options{
		ExecPath:  avail.ChromePath,
		Headless:  !cfg.Browser.Headed,
		NoSandbox: cfg.Browser.NoSandbox,
		Width:     width,
		Height:    height,
		Logf:      log.Printf("chromedp"),
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Debug("closing browser", "error", err)
		}
	}()

	started := e.Now()
	log.Debug("navigating", "url", cfg.Target.URL, "timeout", cfg.Browser.NavigationTimeout)
	if err := sess.Navigate(ctx, cfg.Target.URL, cfg.Browser.NavigationTimeout); err != nil {
		return nil, err
	}

	res, err := axe.Run(ctx, sess, source, cfg.Audit.Tags)
	if err != nil {
		return nil, err
	}
	log.Debug("axe-core finished", "violations", len(res.Violations), "passes", len(res.Passes), "incomplete", len(res.Incomplete))

	checks := runChecks(ctx, sess, e.Checks())

	report := output.NewReport(cfg.Target.URL, cfg.Audit.Tags, res, checks)
	report.StartedAt = started
	report.Duration = e.Now().Sub(started)
	return report, nil
}

// runChecks evaluates the supplementary checks concurrently against the
// loaded page. A failing check becomes an error result; it never aborts the
// audit. Results keep registration order.
func runChecks(ctx context.Context, page browser.Page, checks []rules.Check) []rules.Result {
	results := make([]rules.Result, len(checks))

	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			res, err := c.Evaluate(ctx, page)
			if err != nil {
				log.Debug("check failed", "check", c.ID(), "error", err)
				res = rules.ErrorResult(c.ID(), err.Error())
			}
			if res.CheckID == "" {
				res.CheckID = c.ID()
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func applyCheckOptions(cfg *config.Config) error {
	if len(cfg.Rules.Set) == 0 {
		return nil
	}
	assignments, err := config.ParseRuleOptionAssignments(cfg.Rules.Set)
	if err != nil {
		return err
	}
	return rules.ApplyOptions(assignments)
}

func setupOutputManager(cfg *config.Config, stdout io.Writer) (*output.Manager, error) {
	outMgr := output.NewManager()

	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat)); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func statusFor(r *output.Report) (state, description string) {
	if r.Clean() {
		return gh.StateSuccess, "No accessibility violations found"
	}
	return gh.StateFailure, fmt.Sprintf("%d accessibility issue(s) found", r.Summary.ViolationNodes)
}

// publish reports the outcome as a commit status when --github-status is set.
// Failures are logged and never change the exit code.
func (e *Engine) publish(ctx context.Context, cfg *config.Config, state, description string) {
	if cfg.Publish.GitHubStatus == "" {
		return
	}
	owner, repo, sha, err := config.ParseCommitRef(cfg.Publish.GitHubStatus)
	if err != nil {
		log.Warn("commit status not published", "error", err)
		return
	}

	// The audit deadline may already have expired.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	pub, err := e.NewPublisher(ctx)
	if err != nil {
		log.Warn("commit status not published", "error", err)
		return
	}

	status := gh.Status{
		Owner:       owner,
		Repo:        repo,
		SHA:         sha,
		State:       state,
		Context:     cfg.Publish.GitHubContext,
		Description: description,
	}
	if u, err := url.Parse(cfg.Target.URL); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		status.TargetURL = cfg.Target.URL
	}

	if _, err := pub.PublishStatus(ctx, status); err != nil {
		log.Warn("commit status not published", "error", err)
		return
	}
	log.Debug("commit status published", "repo", owner+"/"+repo, "sha", sha, "state", state)
}

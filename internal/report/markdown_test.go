package report

import (
	"strings"
	"testing"

	"bootstat/domain/run"
	"bootstat/internal/engine"
	"bootstat/internal/statistics"
	"bootstat/internal/testkit"
)

func sampleRecord(t *testing.T) *run.Record {
	t.Helper()
	e := engine.New()
	e.SetSeed(1)
	sample := testkit.Normal(1, 0, 1, 200)
	result, err := e.TestScalar(sample, statistics.Mean, statistics.Mean(sample))
	if err != nil {
		t.Fatalf("fixture test unexpectedly failed: %v", err)
	}
	return run.NewRecord("demo", "mean-check", "mean", result)
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(sampleRecord(t))

	for _, fragment := range []string{
		"# Bootstrap test mean-check: PASSED",
		"Statistic: `mean`",
		"| Component | Reference | Lower | Upper |",
		"Bootstrap distribution",
		"Alpha: 0.01",
	} {
		if !strings.Contains(md, fragment) {
			t.Errorf("markdown missing %q\n%s", fragment, md)
		}
	}
}

func TestBuildMarkdownFailedVerdict(t *testing.T) {
	e := engine.New()
	e.SetSeed(2)
	e.SetFailMode(engine.FailModeWarn)
	result, err := e.TestScalar(testkit.Constant(2.9, 10), statistics.Mean, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	md := BuildMarkdown(run.NewRecord("demo", "off-by-tenth", "mean", result))
	if !strings.Contains(md, "FAILED") {
		t.Error("failed run must render a FAILED verdict")
	}
	if !strings.Contains(md, "all 1000 values") {
		t.Errorf("degenerate distribution should render the collapsed histogram line\n%s", md)
	}
}

func TestRenderHTML(t *testing.T) {
	html := string(RenderHTML(BuildMarkdown(sampleRecord(t))))
	for _, fragment := range []string{"<h1", "<table>", "<code>mean</code>"} {
		if !strings.Contains(html, fragment) {
			t.Errorf("html missing %q", fragment)
		}
	}
}

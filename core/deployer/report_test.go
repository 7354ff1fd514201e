package deployer

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSummaryAllPassed(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, "Integration deployment", []Result{
		{Archive: "ORDER_1_0.iar", Ok: true},
		{Archive: "BILLING_2_0.iar", Ok: true},
	})

	out := buf.String()
	if !strings.Contains(out, "Integration deployment") {
		t.Fatalf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "OK      ORDER_1_0.iar") {
		t.Fatalf("missing row:\n%s", out)
	}
	if !strings.Contains(out, "All 2 archive(s) deployed successfully") {
		t.Fatalf("missing verdict:\n%s", out)
	}
}

func TestWriteSummaryReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, "Integration deployment", []Result{
		{Archive: "ORDER_1_0.iar", Ok: true},
		{Archive: "BAD_1_0.iar", Diagnostic: "status 500: boom"},
	})

	out := buf.String()
	if !strings.Contains(out, "FAILED  BAD_1_0.iar (status 500: boom)") {
		t.Fatalf("missing failure row:\n%s", out)
	}
	if !strings.Contains(out, "1 of 2 archive(s) failed") {
		t.Fatalf("missing verdict:\n%s", out)
	}
	// rows keep processing order
	if strings.Index(out, "ORDER_1_0.iar") > strings.Index(out, "BAD_1_0.iar") {
		t.Fatalf("rows out of order:\n%s", out)
	}
}

package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"tracking_id", " ", "phone"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, `tracking_id LIKE ? ESCAPE '\'`) || strings.Contains(condition, "LOWER(") {
		t.Fatalf("sqlite condition should match the folded column directly, got %s", condition)
	}
	if !strings.HasPrefix(condition, "(") || !strings.Contains(condition, " OR ") {
		t.Fatalf("condition should be a parenthesised OR, got %s", condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", []string{"name"})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != `(name ILIKE ? ESCAPE '\')` {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	got := containsPattern(" 50%_Off ")
	if got != `%50\%\_off%` {
		t.Fatalf("unexpected pattern: %s", got)
	}
}

func TestContainsPatternFoldsUnicode(t *testing.T) {
	if got := containsPattern("ÉMILE"); got != "%émile%" {
		t.Fatalf("unexpected pattern: %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%a%", 3)
	if len(args) != 3 || args[2] != "%a%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

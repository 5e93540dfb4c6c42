package assign

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/taskforge/allocd/core/logger"
	"github.com/taskforge/allocd/core/model"
)

// TokenSet is a set of canonical tokens derived from free text.
type TokenSet map[string]struct{}

func newTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tok is part of the set.
func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// IntersectCount returns the number of tokens shared with other.
func (s TokenSet) IntersectCount(other TokenSet) int {
	n := 0
	for t := range s {
		if other.Has(t) {
			n++
		}
	}
	return n
}

// Intersect returns the shared tokens in lexical order.
func (s TokenSet) Intersect(other TokenSet) []string {
	var common []string
	for t := range s {
		if other.Has(t) {
			common = append(common, t)
		}
	}
	sort.Strings(common)
	return common
}

// synonym folds equivalent surface forms of a technology or role word into a
// single canonical token.
type synonym struct {
	re    *regexp.Regexp
	canon string
}

func fold(pattern, canon string) synonym {
	return synonym{re: regexp.MustCompile(pattern), canon: canon}
}

// synonyms is applied in order against lowercased text. Order matters:
// compound forms must fold before their prefixes (react native before react,
// node.js before node).
var synonyms = []synonym{
	// languages and runtimes
	fold(`\bc\+\+\b`, "cpp"),
	fold(`\bc sharp\b|\bc#\b`, "csharp"),
	fold(`\bpy(thon)?\b`, "python"),
	fold(`\bjs\b|\bjavascript\b`, "javascript"),
	fold(`\bts\b|\btypescript\b`, "typescript"),
	fold(`\bnode\.?js\b|\bnodejs\b|\bnode\b`, "node"),
	fold(`\bjava\b`, "java"),
	fold(`\bgo(lang)?\b`, "golang"),
	fold(`\brust\b`, "rust"),
	fold(`\bphp\b`, "php"),
	fold(`\bkotlin\b`, "kotlin"),
	fold(`\bswift\b`, "swift"),
	// frameworks and frontend
	fold(`\bdjango\b`, "django"),
	fold(`\bfastapi\b`, "fastapi"),
	fold(`\bspring\b|\bspringboot\b`, "spring"),
	fold(`\breact ?native\b`, "reactnative"),
	fold(`\breact\b`, "react"),
	fold(`\bvue(js)?\b`, "vue"),
	fold(`\bangular\b`, "angular"),
	fold(`\bnext\.?js\b`, "nextjs"),
	fold(`\btailwind\b`, "tailwind"),
	// data stores and messaging
	fold(`\bmysql\b`, "mysql"),
	fold(`\bpostgres(ql)?\b`, "postgres"),
	fold(`\bmaria(db)?\b`, "mariadb"),
	fold(`\bredis\b`, "redis"),
	fold(`\bkafka\b`, "kafka"),
	fold(`\bsql\b`, "sql"),
	fold(`\brdbms\b`, "db"),
	fold(`\bmongo(db)?\b`, "mongodb"),
	// cloud and devops
	fold(`\baws\b`, "aws"),
	fold(`\bgcp\b`, "gcp"),
	fold(`\bazure\b`, "azure"),
	fold(`\bk8s\b|\bkubernetes\b`, "kubernetes"),
	fold(`\bdocker\b`, "docker"),
	fold(`\bterraform\b`, "terraform"),
	fold(`\bci/?cd\b|\bpipeline\b`, "cicd"),
	// AI and data
	fold(`\bai\b|\bml\b|\bmachine learning\b`, "ml"),
	fold(`\bpytorch\b`, "pytorch"),
	fold(`\btensorflow\b|\btf\b`, "tensorflow"),
	fold(`\bnlp\b`, "nlp"),
	fold(`\bcv\b|\bcomputer vision\b`, "cv"),
	fold(`\bllm\b`, "llm"),
	fold(`\binference\b`, "inference"),
	fold(`\bembedding(s)?\b`, "embedding"),
	// roles and domains, English and Korean
	fold(`\bbackend\b|백엔드`, "backend"),
	fold(`\bfrontend\b|프론트(엔드)?`, "frontend"),
	fold(`\bfull[- ]?stack\b`, "fullstack"),
	fold(`\bdevops\b|인프라`, "devops"),
	fold(`\bqa\b|\btest(ing)?\b|테스트`, "qa"),
	fold(`\bpm\b|\bproduct manager\b|기획|문서|문서화|스펙|요구사항`, "docs"),
	fold(`\bmobile\b|안드로이드|ios`, "mobile"),
	fold(`\bui\b|\bux\b|디자인`, "design"),
	fold(`\bapi\b|rest|grpc|msa|microservice`, "api"),
	fold(`데이터|분석|통계|bi|warehouse|etl|spark|airflow`, "data"),
}

// tokenSplit separates on everything that is not a letter, digit, plus or
// hash. Hangul syllables count as letters.
var tokenSplit = regexp.MustCompile(`[^a-z0-9가-힣+#]+`)

// Tokens canonicalizes free text into a token set: lowercase, synonym folding
// in table order, then splitting. Tokens shorter than two runes are dropped.
// Tokens is a pure function and never fails; empty input yields an empty set.
func Tokens(text string) TokenSet {
	t := strings.ToLower(text)
	for _, s := range synonyms {
		t = s.re.ReplaceAllString(t, s.canon)
	}
	set := make(TokenSet)
	for _, tok := range tokenSplit.Split(t, -1) {
		if utf8.RuneCountInString(tok) >= 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}

// RequirementTokens extracts the token set for a requirement from its title,
// summary and description. A JSON description is walked recursively and every
// string leaf contributes text. A description that does not parse is noted
// and skipped; the run is not aborted.
func RequirementTokens(req model.Requirement, log logger.Logger) TokenSet {
	pieces := []string{req.Title, req.Summary}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		var raw any
		if err := json.Unmarshal([]byte(desc), &raw); err != nil {
			if log != nil {
				log.Debugf("requirement %d: description is not valid JSON, matching on title and summary only", req.ID)
			}
		} else {
			collectStrings(raw, &pieces)
		}
	}
	return Tokens(strings.Join(pieces, " "))
}

// collectStrings walks nested objects and arrays and gathers string leaves.
func collectStrings(v any, bag *[]string) {
	switch x := v.(type) {
	case map[string]any:
		for _, item := range x {
			collectStrings(item, bag)
		}
	case []any:
		for _, item := range x {
			collectStrings(item, bag)
		}
	case string:
		*bag = append(*bag, x)
	}
}

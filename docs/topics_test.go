package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestEveryTopicLoads(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) == 0 {
		t.Fatal("no topics embedded")
	}
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
		if strings.TrimSpace(content) == "" {
			t.Errorf("topic %q is empty", topic)
		}
	}
}

func TestUnknownTopicFails(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("unknown topic should fail")
	}
}

func TestGetTopicsConcatenates(t *testing.T) {
	doc, err := GetTopics("sync", "report")
	if err != nil {
		t.Fatal(err)
	}
	single, err := GetTopic("sync")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc, single) {
		t.Error("GetTopics should concatenate topics in order")
	}
}

func TestEveryTopicIsListedInReadme(t *testing.T) {
	// The readme is the entry point: a topic nobody can discover from it
	// might as well not exist.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	listed := map[string]bool{}
	topicRegex := regexp.MustCompile("`dl topic ([a-z-]+)`")
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		for _, m := range topicRegex.FindAllStringSubmatch(scanner.Text(), -1) {
			listed[m[1]] = true
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		topic := strings.TrimSuffix(filepath.Base(f), ".md")
		if topic == "readme" {
			continue
		}
		if !listed[topic] {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestTopicStructure(t *testing.T) {
	// Every topic must be well-formed markdown with a title heading.
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	mdParser := goldmark.DefaultParser()
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := mdParser.Parse(text.NewReader(source))

			headings := 0
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				if _, ok := n.(*ast.Heading); ok {
					headings++
				}
				return ast.WalkContinue, nil
			})
			if headings == 0 {
				t.Errorf("topic %q has no headings", topic)
			}
		})
	}
}

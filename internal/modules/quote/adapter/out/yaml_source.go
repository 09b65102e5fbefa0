package out

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"thrivehub/internal/modules/quote/domain"
	quoteout "thrivehub/internal/modules/quote/port/out"
)

// YAMLFileSource reads a quote file of the form
//
//	quotes:
//	  - "Plain quote"
//	  - text: "Attributed quote"
//	    author: Someone
type YAMLFileSource struct {
	path string
}

func NewYAMLFileSource(path string) quoteout.QuoteSource {
	return &YAMLFileSource{path: path}
}

type quoteFile struct {
	Quotes []quoteItem `yaml:"quotes"`
}

type quoteItem struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

func (q *quoteItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		q.Text = node.Value
		return nil
	}
	type plain quoteItem
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*q = quoteItem(p)
	return nil
}

func (q quoteItem) String() string {
	text := strings.TrimSpace(q.Text)
	author := strings.TrimSpace(q.Author)
	if text == "" || author == "" {
		return text
	}
	return text + " – " + author
}

func (s *YAMLFileSource) Load(context.Context) (domain.Set, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Set{}, fmt.Errorf("read quotes file: %w", err)
	}
	var file quoteFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return domain.Set{}, fmt.Errorf("decode quotes file %s: %w", s.path, err)
	}
	texts := make([]string, 0, len(file.Quotes))
	for _, item := range file.Quotes {
		texts = append(texts, item.String())
	}
	set, err := domain.NewSet(texts...)
	if err != nil {
		return domain.Set{}, fmt.Errorf("quotes file %s: %w", s.path, err)
	}
	return set, nil
}

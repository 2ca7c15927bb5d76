// Package grammar is the facade over the three tree-sitter grammars the
// formatter depends on: the embedded-template grammar (delimiters and
// directive boundaries), the HTML grammar (structural re-indentation) and
// the scripting grammar (Ruby, for indent-delta classification). It is the
// only package that imports go-tree-sitter directly; every other stage
// navigates parse trees through the Node/Tree adapter in adapter.go (§9).
package grammar

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_embedded_template "github.com/tree-sitter/tree-sitter-embedded-template/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/ryancbahan/erb-fmt/internal/log"
)

var (
	templateOnce sync.Once
	templateLang *sitter.Language
	templateErr  error

	htmlOnce sync.Once
	htmlLang *sitter.Language
	htmlErr  error

	scriptingOnce sync.Once
	scriptingLang *sitter.Language
	scriptingErr  error
)

func loadTemplateLanguage() (*sitter.Language, error) {
	templateOnce.Do(func() {
		templateLang = sitter.NewLanguage(tree_sitter_embedded_template.Language())
		if templateLang == nil {
			templateErr = fmt.Errorf("grammar: embedded-template language failed to load")
			log.Error("%v", templateErr)
		}
	})
	return templateLang, templateErr
}

func loadHTMLLanguage() (*sitter.Language, error) {
	htmlOnce.Do(func() {
		htmlLang = sitter.NewLanguage(tree_sitter_html.Language())
		if htmlLang == nil {
			htmlErr = fmt.Errorf("grammar: html language failed to load")
			log.Error("%v", htmlErr)
		}
	})
	return htmlLang, htmlErr
}

func loadScriptingLanguage() (*sitter.Language, error) {
	scriptingOnce.Do(func() {
		scriptingLang = sitter.NewLanguage(tree_sitter_ruby.Language())
		if scriptingLang == nil {
			scriptingErr = fmt.Errorf("grammar: scripting (ruby) language failed to load")
			log.Error("%v", scriptingErr)
		}
	})
	return scriptingLang, scriptingErr
}

// parser pools: tree-sitter parser instances are cheap to reset but
// expensive to allocate fresh, so each grammar keeps its own pool (§5:
// "parsers are allocated per call, or pooled thread-locally for
// throughput").
var (
	templatePool sync.Pool
	htmlPool     sync.Pool
	scriptingPool sync.Pool
)

// Facade is the single synchronous entry point onto all three grammars.
// It is safe to share across goroutines; each call borrows its own parser
// from the relevant pool and returns it before returning (§5).
type Facade struct{}

// NewFacade initializes all three grammars and returns the facade. A
// grammar-loading failure is a fatal init error (§7): it is logged once
// here and returned so the caller can abort startup instead of proceeding
// with a facade that can never parse.
func NewFacade() (*Facade, error) {
	if _, err := loadTemplateLanguage(); err != nil {
		return nil, err
	}
	if _, err := loadHTMLLanguage(); err != nil {
		return nil, err
	}
	if _, err := loadScriptingLanguage(); err != nil {
		return nil, err
	}
	return &Facade{}, nil
}

func acquireParser(pool *sync.Pool, lang *sitter.Language) *sitter.Parser {
	if p, ok := pool.Get().(*sitter.Parser); ok && p != nil {
		p.Reset()
		return p
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		panic(fmt.Sprintf("grammar: failed to bind language to parser: %v", err))
	}
	return p
}

func releaseParser(pool *sync.Pool, p *sitter.Parser) {
	if p != nil {
		pool.Put(p)
	}
}

func parseWith(pool *sync.Pool, lang *sitter.Language, src []byte) *Tree {
	p := acquireParser(pool, lang)
	defer releaseParser(pool, p)
	tree := p.Parse(src, nil)
	if tree == nil {
		return nil
	}
	return &Tree{tree: tree, text: src}
}

// ParseTemplate parses the raw source with the embedded-template grammar,
// producing the tree the Region Segmenter walks (§4.1, §4.2).
func (f *Facade) ParseTemplate(src []byte) *Tree {
	return parseWith(&templatePool, templateLang, src)
}

// ParseHTML parses placeholder-substituted HTML with the HTML grammar
// (§4.1, §4.4).
func (f *Facade) ParseHTML(src []byte) *Tree {
	return parseWith(&htmlPool, htmlLang, src)
}

// ParseScripting parses a single scripting directive's trimmed code with
// the scripting (Ruby) grammar (§4.1, §4.6). A trailing newline is the
// caller's responsibility to append before calling this, matching grammars
// that require a line terminator.
func (f *Facade) ParseScripting(src []byte) *Tree {
	return parseWith(&scriptingPool, scriptingLang, src)
}

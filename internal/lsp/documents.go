package lsp

import "sync"

type document struct {
	path    string
	content string
	result  *AnalysisResult // nil until first requested
}

// DocumentStore holds open documents keyed by URI, along with their analysis
// results. A result is computed on first use and dropped on every edit.
type DocumentStore struct {
	mu   sync.Mutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

// Open starts tracking a document. path is its filesystem path, used to pick
// how the content is analyzed.
func (s *DocumentStore) Open(uri, path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{path: path, content: content}
}

func (s *DocumentStore) Update(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	doc.content = content
	doc.result = nil
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the analysis of an open document, or nil if it is not open.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	if doc.result == nil {
		doc.result = Analyze(doc.path, doc.content)
	}
	return doc.result
}

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// inference keeps every call to the model endpoint behind llm.OllamaClient,
// which owns timeouts, error kinds and request logging.
func inference(m dsl.Matcher) {
	m.Match(`http.Get($*_)`, `http.Post($*_)`, `http.PostForm($*_)`, `http.Head($*_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`package-level http helpers use http.DefaultClient; go through llm.OllamaClient or a client with a timeout`)

	m.Match(`http.DefaultClient`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`http.DefaultClient has no timeout; build an *http.Client`)

	m.Match(`http.NewRequest($method, $url, $body)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`use http.NewRequestWithContext so callers can cancel`).
		Suggest(`http.NewRequestWithContext(ctx, $method, $url, $body)`)
}

// logging routes diagnostics through apex/log so level and handler follow
// the configuration.
func logging(m dsl.Matcher) {
	m.Import("log")

	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`, `fmt.Print($*_)`).
		Where(!m.File().PkgPath.Matches(`/cmd/`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`write diagnostics with github.com/apex/log, not stdout`)

	m.Match(`log.Printf($*_)`, `log.Println($*_)`, `log.Fatalf($*_)`, `log.Fatal($*_)`).
		Where(m.File().Imports("log")).
		Report(`standard library log bypasses the configured handler; use github.com/apex/log`)
}

// normalization keeps model replies going through jsonreply, which strips
// markdown fences before decoding.
func normalization(m dsl.Matcher) {
	m.Match(`json.Unmarshal([]byte($raw), $_)`).
		Where(m.File().PkgPath.Matches(`/internal/domain/(sentiment|animal)$`)).
		Report(`decode model replies with jsonreply.Object`)
}

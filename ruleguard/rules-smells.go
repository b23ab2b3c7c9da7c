// Package gorules holds go-ruleguard rules run by gocritic in CI.
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards with the same return collapse into one:
	//   if a { return err }
	//   if b { return err }
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Triple-nested loops in batch code usually hide a lookup that should be a map.
	m.Match(`for $*_ { for $*_ { for $*_ { $*_ } } }`).
		Report(`triple-nested for-loop; consider indexing the inner data first`)
}

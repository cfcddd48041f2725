// Package input resolves raw terminal input into the events the command and
// text-input layers consume.
//
// # Architecture
//
// The Resolver sits on top of four cooperating pieces:
//
//   - Source: the terminal backend that delivers raw events, possibly with a
//     timeout, and can be polled for a pending interrupt
//   - event.Queue: pending events, including keys pushed back by mappings
//   - seq.Table: command maps, input maps and abbreviations
//   - key.Table: symbolic classification of raw characters
//
// Each call to Get returns exactly one resolved event. Characters that begin
// a mapping are matched against the queued input; a partial match reads
// more input with the keytime (or, for <escape>, the shorter escapetime)
// timeout. A complete match replaces the matched characters with the
// mapping's output and, with remap enabled, matches again.
//
// # Remap loops
//
// A mapping whose output begins with its own input ("map n nz.") returns
// the shared prefix unmapped so expansion always makes progress. Other
// loops ("map a b", "map b a") are only broken by the user interrupting:
// the resolver polls the Source for an interrupt on the first expansion of
// every call and on every tenth after that.
//
// # Usage
//
//	r := input.NewResolver(queue, seqs, src,
//	    input.WithSettings(input.DefaultSettings()),
//	    input.WithFlusher(host))
//
//	ev, err := r.Get(ctx, input.MapCommand, 0)
//	if fault.IsFatal(err) {
//	    return err
//	}
package input

/*Package sv merges structural-variant calls produced by several
  independent detectors into one non-redundant, provenance-tagged call set.

  Matching concepts:

  Two calls of the same type on the same chromosome describe the same
  event when their overlap is reciprocal (at least OverlapRatio of each
  call's own length), or when both breakpoints agree within the larger of
  the two calls' wiggles.  Insertions are point events and compare by
  anchor position only.  Calls of different types are never compared.

  Merging runs in two phases per SV type.  Phase 1 collapses duplicate
  calls within each detector.  Phase 2 pools the per-detector results,
  clusters them transitively into anchors, and then re-tests each pooled
  call's reciprocal overlap against the anchors: calls that were only
  absorbed through an intermediate record re-cluster among themselves
  rather than inflating an unrelated call.  Without that second look, a
  short deletion near the edge of a long one can chain through a third
  record into a single bogus cluster.

  A merged record's source set is the union of its contributors' source
  sets, its span is the union of their spans, and it is precise only if
  every contributor was precise and agreed about the breakpoints within
  its own wiggle.  Finalization marks records with enough independent
  support as validated and normalizes coordinates; the output is ordered
  by (chromosome, start, end).

  The engine is pure and deterministic: it performs no I/O, holds no
  package-level state, and identical input multisets with identical
  options always produce identical output regardless of arrival order.
*/
package sv

/*Package interval implements a queryable union of genomic regions loaded
  from sorted BED files, used to drop structural-variant calls that touch
  assembly gaps.  Overlapping and touching input intervals are merged on
  load; queries ask whether a position or span intersects the union.
  Every position must fit in a PosType, currently int32.
*/
package interval

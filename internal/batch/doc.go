// Package batch discovers recordings and drives each one through the
// pipeline in sequence. One recording failing never stops the batch; the
// driver records the outcome and moves on. A workspace lock keeps two batch
// runs from competing for the same accelerator.
package batch

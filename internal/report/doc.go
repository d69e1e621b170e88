// Package report renders replay traces as charts: an interactive HTML page
// with go-echarts and a static PNG with gonum/plot. Both plot commanded
// speed against actual speed per tick, with the curve and following caps
// drawn where they were active.
package report

// Package networth turns a series of dated account balances into portfolio
// analytics. It is designed to be local-first and stateless: every function
// is a pure computation over the accounts (Column) and snapshots (Record)
// held by the caller.
//
// The core functionalities include:
//   - Net-Worth Calculation: reducing a snapshot into category totals, total
//     assets, liquidity and net worth, liabilities always counting as debt.
//   - Period Aggregation: bucketing snapshots by month, quarter or year, each
//     bucket represented by its closing snapshot.
//   - Risk & Performance: trends, drawdown against the running maximum, max
//     drawdown, CAGR, year-to-date change and leverage ratios.
//   - Compound Projection: estimating the steady monthly contribution hidden in
//     the history, and simulating when market returns overtake it.
//   - Dataset: keeping one snapshot per date under an explicit merge policy,
//     persisted as JSONL and exchanged as CSV.
//
// This package serves as the foundational logic for the `nw` command-line
// tool and its HTTP service.
package networth

// Package sim provides the core of adsim, a digital twin of ad-serving
// pipelines across search, social feed, professional feed and short-video
// platforms.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - simulator.go: the definition API and the parallel day loop
//   - engine.go: one campaign-day: reach, pacing, exposure, clicks, conversions, spend
//   - pacing.go: the per-(campaign, platform) budget ledger
//
// # Architecture
//
// The sim package defines the PlatformModel interface and the shared
// scoring formulas; variants live in sim/platforms and register themselves
// via init() by setting NewPlatformModelFunc. Other sub-packages:
//   - sim/platforms/: google, facebook, linkedin, tiktok
//   - sim/report/: JSON export, import and comparison of results
//   - sim/trace/: optional pacing decision records
//
// # Determinism
//
// Every random draw for a campaign-day comes from a stream derived from the
// simulation seed, the campaign id, the campaign's own seed and the day
// (see rng.go). Output does not depend on worker count or scheduling.
package sim

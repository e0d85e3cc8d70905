// Package utils provides internal time conversion helpers for the routing
// gateway. This package is not intended to be imported by external code.
//
// Its main job is localizing provider wall-clock times: some upstream
// providers report local times with no timezone information, so the adapters
// need a deterministic daylight-saving rule to turn those into epoch
// milliseconds.
package utils

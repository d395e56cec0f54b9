// Package doom is a software rendition of a small wgpu raycaster demo. A
// per-column DDA raycaster draws the level into an RGBA8 screen texture,
// and a full-screen blit shader pair (a vertex stage generating a
// six-vertex quad from vertex indices, a fragment stage sampling the bound
// texture) draws that texture across an offscreen color target.
//
// The blit shader also exists as embedded WGSL source; pipeline creation
// validates it with the naga compiler so the Go stages and the shader text
// cannot drift apart unnoticed.
package doom

// Package cli provides the interactive terminal client.
//
// It wires configuration, local storage, the backend gateway, the Telegram
// bridge and the session controller, then runs a REPL whose commands mirror
// the app screens: ads, mining, VIP, referral and withdrawal.
//
// Key features:
//   - Telegram auto-login from launch data, or email login / sign-up
//   - Profile status with loading watchdog and retry/logout on errors
//   - Reward actions with inline error messages
//   - Language switching (Arabic, English, Russian)
//   - Logout and local reset, both of which rebuild the controller
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

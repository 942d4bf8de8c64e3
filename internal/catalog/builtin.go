package catalog

import "extguard/internal/model"

// builtinRecords is the canonical permission table. Tier assignments
// follow the wide monitor catalog; permissions missing there take the
// tier implied by the scoring variant's point values. Weights are
// inherited from tiers (see TierWeight).
var builtinRecords = []Record{
	// Host patterns
	{ID: "<all_urls>", Tier: model.TierCritical, Explanation: "Access ALL websites you visit"},
	{ID: "*://*/*", Tier: model.TierCritical, Explanation: "Access every single website you visit"},
	{ID: "http://*/*", Tier: model.TierCritical, Explanation: "Access all HTTP websites"},
	{ID: "https://*/*", Tier: model.TierCritical, Explanation: "Access all HTTPS websites"},
	{ID: "file:///*", Tier: model.TierCritical, Explanation: "Access local files on your computer"},

	// Critical API permissions
	{ID: "webRequestBlocking", Tier: model.TierCritical, Explanation: "Block or modify network requests"},
	{ID: "nativeMessaging", Tier: model.TierCritical, Explanation: "Communicate with programs on your computer"},
	{ID: "proxy", Tier: model.TierCritical, Explanation: "Route your traffic through a proxy"},
	{ID: "vpnProvider", Tier: model.TierCritical, Explanation: "Route all network traffic through a VPN it controls"},
	{ID: "debugger", Tier: model.TierCritical, Explanation: "Full debugging access to browser"},
	{ID: "desktopCapture", Tier: model.TierCritical, Explanation: "Capture your screen content"},

	// High
	{ID: "webRequest", Tier: model.TierHigh, Explanation: "Monitor all network requests"},
	{ID: "cookies", Tier: model.TierHigh, Explanation: "Read/modify cookies including login sessions"},
	{ID: "history", Tier: model.TierHigh, Explanation: "Read your entire browsing history"},
	{ID: "clipboardRead", Tier: model.TierHigh, Explanation: "Read your clipboard contents"},
	{ID: "geolocation", Tier: model.TierHigh, Explanation: "Access your location"},
	{ID: "management", Tier: model.TierHigh, Explanation: "Manage other extensions"},
	{ID: "scripting", Tier: model.TierHigh, Explanation: "Inject scripts into web pages"},
	{ID: "browsingData", Tier: model.TierHigh, Explanation: "Delete your browsing data"},
	{ID: "contentSettings", Tier: model.TierHigh, Explanation: "Change content settings (JS, cookies, etc.)"},
	{ID: "identity", Tier: model.TierHigh, Explanation: "Access your account identity"},
	{ID: "privacy", Tier: model.TierHigh, Explanation: "Change browser privacy settings"},
	{ID: "pageCapture", Tier: model.TierHigh, Explanation: "Save pages you visit as files"},
	{ID: "tabCapture", Tier: model.TierHigh, Explanation: "Record the contents of your tabs"},

	// Medium
	{ID: "bookmarks", Tier: model.TierMedium, Explanation: "Read and modify bookmarks"},
	{ID: "tabs", Tier: model.TierMedium, Explanation: "See all open tabs and their URLs"},
	{ID: "clipboardWrite", Tier: model.TierMedium, Explanation: "Write to your clipboard"},
	{ID: "declarativeNetRequest", Tier: model.TierMedium, Explanation: "Block or redirect network requests by rule"},
	{ID: "topSites", Tier: model.TierMedium, Explanation: "See your most visited sites"},
	{ID: "downloads", Tier: model.TierMedium, Explanation: "Manage your downloads"},
	{ID: "webNavigation", Tier: model.TierMedium, Explanation: "Monitor when you navigate between pages"},
	{ID: "contextMenus", Tier: model.TierMedium, Explanation: "Add items to your right-click menu"},

	// Low
	{ID: "activeTab", Tier: model.TierLow, Explanation: "Access the current tab on click"},
	{ID: "storage", Tier: model.TierLow, Explanation: "Store data locally in the browser"},
	{ID: "alarms", Tier: model.TierLow, Explanation: "Schedule periodic background tasks"},
	{ID: "notifications", Tier: model.TierLow, Explanation: "Show desktop notifications"},
	{ID: "idle", Tier: model.TierLow, Explanation: "Detect when you are idle"},
	{ID: "power", Tier: model.TierLow, Explanation: "Manage system power settings"},
	{ID: "fontSettings", Tier: model.TierLow, Explanation: "Access font settings"},
	{ID: "system.cpu", Tier: model.TierLow, Explanation: "Read CPU metadata"},
	{ID: "system.memory", Tier: model.TierLow, Explanation: "Read memory metadata"},
	{ID: "system.storage", Tier: model.TierLow, Explanation: "Read storage device metadata"},
	{ID: "tts", Tier: model.TierLow, Explanation: "Use text-to-speech"},
	{ID: "unlimitedStorage", Tier: model.TierLow, Explanation: "Store unlimited local data"},
}

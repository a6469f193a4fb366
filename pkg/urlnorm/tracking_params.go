package urlnorm

// defaultTrackingParams is the fixed set of tracking parameter keys removed
// during normalization. The utm_* family is handled by prefix in addition to
// the explicit entries here. The set is data, not control flow: extend it via
// New(extraKeys...) or the service data config without touching the normalizer.
var defaultTrackingParams = []string{
	// UTM (Google Analytics campaign keys)
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
	"utm_id",

	// Facebook / Instagram
	"fbclid",
	"igshid",

	// Google Ads
	"gclid",
	"gclsrc",
	"dclid",
	"gbraid",
	"wbraid",

	// Microsoft / Bing
	"msclkid",

	// Twitter
	"twclid",

	// Yandex
	"yclid",

	// Mailchimp
	"mc_cid",
	"mc_eid",

	// HubSpot
	"_hsenc",
	"_hsmi",

	// Drip / Vero / other email platforms
	"vero_id",
	"vero_conv",
	"oly_anon_id",
	"oly_enc_id",

	// Adobe Analytics
	"s_cid",
	"s_kwcid",

	// Matomo / Piwik
	"mtm_source",
	"mtm_medium",
	"mtm_campaign",
	"pk_source",
	"pk_medium",
	"pk_campaign",
}

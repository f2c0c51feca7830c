package format

import "github.com/layerkit/psd"

// blendKeys maps the fixed 4-character blend-mode codes stored in layer
// records to the blend-mode enum. The table is closed: codes outside it
// (including the dissolve and linear-burn family the subset does not
// support) fall back to BlendNormal rather than erroring.
var blendKeys = map[string]psd.BlendMode{
	"norm": psd.BlendNormal,
	"mul ": psd.BlendMultiply,
	"scrn": psd.BlendScreen,
	"over": psd.BlendOverlay,
	"dark": psd.BlendDarken,
	"lite": psd.BlendLighten,
	"div ": psd.BlendColorDodge,
	"idiv": psd.BlendColorBurn,
	"hLit": psd.BlendHardLight,
	"sLit": psd.BlendSoftLight,
	"diff": psd.BlendDifference,
	"smud": psd.BlendExclusion,
	"hue ": psd.BlendHue,
	"sat ": psd.BlendSaturation,
	"colr": psd.BlendColor,
	"lum ": psd.BlendLuminosity,
	"lddg": psd.BlendAddition,
	"fsub": psd.BlendSubtract,
	"fdiv": psd.BlendDivide,
}

// BlendModeForKey maps a 4-character blend-mode code to its enum value.
// Unrecognized codes map to BlendNormal.
func BlendModeForKey(key string) psd.BlendMode {
	if m, ok := blendKeys[key]; ok {
		return m
	}
	return psd.BlendNormal
}

package wlrcore

import "github.com/wlrcore/wlrcore/wlrutil"

// Addon and AddonSet are the Go rendering of wlroots's intrusive
// wlr_addon/wlr_addon_set. The types live in wlrutil so that
// output/scene/xwm can depend on them without an import cycle back
// through this root package; these aliases let root-package code
// spell them as wlrcore.Addon / wlrcore.AddonSet as if defined here.
type Addon = wlrutil.Addon
type AddonSet = wlrutil.AddonSet

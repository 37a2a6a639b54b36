package wlrcore

import "github.com/wlrcore/wlrcore/wlrutil"

// Signal is the Go rendering of wl_signal/wl_listener used throughout
// wlrcore and its subsystem packages. The type itself lives in
// wlrutil so that output/scene/xwm can depend on it without an import
// cycle back through this root package; this alias lets root-package
// code spell it as wlrcore.Signal[T] as if it were defined here.
type Signal[T any] = wlrutil.Signal[T]

package box

// Static classification of known box types. This is domain knowledge from
// ISO/IEC 14496-12, not something inferred from content: a container is a
// container because the standard says so, even when its payload is garbage.

// containerTypes are boxes whose payload is a sequence of child boxes.
var containerTypes = map[FourCC]struct{}{
	CC("moov"): {},
	CC("trak"): {},
	CC("mdia"): {},
	CC("minf"): {},
	CC("stbl"): {},
	CC("edts"): {},
	CC("udta"): {},
	CC("meta"): {},
	CC("moof"): {},
	CC("traf"): {},
	CC("mvex"): {},
	CC("mfra"): {},
	CC("meco"): {},
	CC("dinf"): {},
	CC("tref"): {},
	CC("sinf"): {},
	CC("schi"): {},
	CC("ipro"): {},
	CC("iprp"): {},
	CC("iref"): {},
	CC("ipco"): {},
	CC("ipma"): {},
}

// fullBoxTypes are boxes whose payload opens with version and flags fields.
// Non-exhaustive; the safe default for an unknown type is a plain leaf.
var fullBoxTypes = map[FourCC]struct{}{
	CC("mvhd"): {},
	CC("tkhd"): {},
	CC("mdhd"): {},
	CC("hdlr"): {},
	CC("vmhd"): {},
	CC("smhd"): {},
	CC("hmhd"): {},
	CC("nmhd"): {},
	CC("dref"): {},
	CC("stsd"): {},
	CC("stts"): {},
	CC("ctts"): {},
	CC("stsc"): {},
	CC("stsz"): {},
	CC("stz2"): {},
	CC("stco"): {},
	CC("co64"): {},
	CC("stss"): {},
	CC("stsh"): {},
	CC("padb"): {},
	CC("stdp"): {},
	CC("sdtp"): {},
	CC("sgpd"): {},
	CC("sbgp"): {},
	CC("subs"): {},
	CC("elst"): {},
	CC("sidx"): {},
	CC("mehd"): {},
	CC("trex"): {},
	CC("mfhd"): {},
	CC("tfhd"): {},
	CC("tfdt"): {},
	CC("trun"): {},
	CC("tfra"): {},
	CC("iloc"): {},
	CC("iinf"): {},
	CC("infe"): {},
	CC("pitm"): {},
	CC("pssh"): {},
	CC("saio"): {},
	CC("saiz"): {},
	CC("cslg"): {},
	CC("url "): {},
	CC("urn "): {},
}

// IsContainer reports whether the type is a known container box.
func IsContainer(cc FourCC) bool {
	_, ok := containerTypes[cc]
	return ok
}

// IsFullBox reports whether the type is a known FullBox.
func IsFullBox(cc FourCC) bool {
	_, ok := fullBoxTypes[cc]
	return ok
}

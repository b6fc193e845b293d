package box

// boxNames maps known four-character codes to the display names used by
// inspection UIs. Populated once at init, never mutated. Absence from the
// table is not an error, just an unnamed box.
var boxNames = map[FourCC]string{
	// File-level / top-level
	CC("ftyp"): "File Type Box",
	CC("moov"): "Movie Box",
	CC("mdat"): "Media Data Box",
	CC("free"): "Free Space Box",
	CC("skip"): "Skip Box",
	CC("wide"): "Wide Placeholder Box",
	CC("meta"): "Metadata Box",
	CC("pssh"): "Protection System Specific Header",
	CC("sidx"): "Segment Index Box",
	CC("ssix"): "Subsegment Index Box",
	CC("prft"): "Producer Reference Time",
	CC("styp"): "Segment Type Box",
	CC("emsg"): "Event Message Box",
	CC("mfra"): "Movie Fragment Random Access Box",
	CC("mfro"): "Movie Fragment Random Access Offset Box",

	// moov children
	CC("mvhd"): "Movie Header Box",
	CC("trak"): "Track Box",
	CC("mvex"): "Movie Extends Box",
	CC("udta"): "User Data Box",

	// trak children
	CC("tkhd"): "Track Header Box",
	CC("edts"): "Edit Box",
	CC("mdia"): "Media Box",
	CC("tref"): "Track Reference Box",
	CC("iprp"): "Item Properties Box",
	CC("meco"): "Additional Metadata Container Box",

	// edts children
	CC("elst"): "Edit List Box",

	// mdia children
	CC("mdhd"): "Media Header Box",
	CC("hdlr"): "Handler Reference Box",
	CC("minf"): "Media Information Box",

	// minf children
	CC("vmhd"): "Video Media Header Box",
	CC("smhd"): "Sound Media Header Box",
	CC("hmhd"): "Hint Media Header Box",
	CC("nmhd"): "Null Media Header Box",
	CC("dinf"): "Data Information Box",
	CC("stbl"): "Sample Table Box",

	// dinf children
	CC("dref"): "Data Reference Box",
	CC("url "): "Data Entry URL Box",
	CC("urn "): "Data Entry URN Box",

	// stbl children
	CC("stsd"): "Sample Description Box",
	CC("stts"): "Decoding Time-to-Sample Box",
	CC("ctts"): "Composition Time-to-Sample Box",
	CC("stsc"): "Sample-to-Chunk Box",
	CC("stsz"): "Sample Size Box",
	CC("stz2"): "Compact Sample Size Box",
	CC("stco"): "Chunk Offset Box",
	CC("co64"): "Chunk Offset (64-bit) Box",
	CC("stss"): "Sync Sample Box",
	CC("stsh"): "Shadow Sync Sample Box",
	CC("padb"): "Padding Bits Box",
	CC("stdp"): "Sample Degradation Priority Box",
	CC("sdtp"): "Sample Dependency Flags Box",
	CC("sgpd"): "Sample Group Description Box",
	CC("sbgp"): "Sample-to-Group Box",
	CC("subs"): "Sub-Sample Information Box",

	// fragmented / mvex / moof / traf
	CC("mehd"): "Movie Extends Header Box",
	CC("trex"): "Track Extends Box",
	CC("moof"): "Movie Fragment Box",
	CC("mfhd"): "Movie Fragment Header Box",
	CC("traf"): "Track Fragment Box",
	CC("tfhd"): "Track Fragment Header Box",
	CC("tfdt"): "Track Fragment Decode Time Box",
	CC("trun"): "Track Fragment Run Box",
	CC("tfra"): "Track Fragment Random Access Box",

	// meta / HEIF
	CC("iloc"): "Item Location Box",
	CC("iinf"): "Item Information Box",
	CC("infe"): "Item Info Entry Box",
	CC("iref"): "Item Reference Box",
	CC("ipco"): "Item Property Container Box",
	CC("ipma"): "Item Property Association Box",
	CC("ipci"): "Item Property Container Info Box",
	CC("ispe"): "Image Spatial Extents Property",
	CC("pixi"): "Pixel Information Property",
	CC("auxC"): "Auxiliary Type Property",
	CC("clap"): "Clean Aperture Box",
	CC("colr"): "Colour Information Box",
	CC("hvcC"): "HEVC Decoder Configuration Box",
	CC("avcC"): "AVC Decoder Configuration Box",
	CC("pitm"): "Primary Item Box",

	// encryption / CENC
	CC("sinf"): "Protection Scheme Information Box",
	CC("schm"): "Scheme Type Box",
	CC("schi"): "Scheme Information Box",
	CC("tenc"): "Track Encryption Box",
	CC("saio"): "Sample Auxiliary Information Offsets Box",
	CC("saiz"): "Sample Auxiliary Information Sizes Box",
	CC("senc"): "Sample Encryption Box",
	CC("frma"): "Original Format Box",

	// sample entries (video)
	CC("avc1"): "AVC Video Sample Entry",
	CC("avc2"): "AVC2 Video Sample Entry",
	CC("avc3"): "AVC3 Video Sample Entry",
	CC("avc4"): "AVC4 Video Sample Entry",
	CC("hev1"): "HEVC Video Sample Entry (hev1)",
	CC("hvc1"): "HEVC Video Sample Entry (hvc1)",
	CC("vvc1"): "VVC Video Sample Entry",
	CC("mp4v"): "MPEG-4 Visual Sample Entry",
	CC("vp08"): "VP8 Video Sample Entry",
	CC("vp09"): "VP9 Video Sample Entry",
	CC("av01"): "AV1 Video Sample Entry",

	// sample entries (audio)
	CC("mp4a"): "MPEG-4 Audio Sample Entry",
	CC("ac-3"): "AC-3 Audio Sample Entry",
	CC("ec-3"): "Enhanced AC-3 Audio Sample Entry",
	CC("opus"): "Opus Audio Sample Entry",
	CC("samr"): "AMR-NB Audio Sample Entry",
	CC("sawb"): "AMR-WB Audio Sample Entry",
	CC("alac"): "Apple Lossless Sample Entry",
	CC("flac"): "FLAC Audio Sample Entry",

	// misc / QuickTime extras
	CC("pasp"): "Pixel Aspect Ratio Box",
	CC("cslg"): "Composition Shift Least Greatest Box",
	CC("cprt"): "Copyright Box",
	CC("gama"): "Gamma Box",
	CC("fiel"): "Field Handling Box",
	CC("tapt"): "Track Aperture Mode Dimensions Box",
	CC("ipro"): "Item Protection Box",

	// QuickTime user-data text atoms
	CC("\xa9nam"): "Name Atom",
	CC("\xa9ART"): "Artist Atom",
	CC("\xa9alb"): "Album Atom",
	CC("\xa9cmt"): "Comment Atom",
	CC("\xa9day"): "Date Atom",
	CC("\xa9gen"): "Genre Atom",
	CC("\xa9too"): "Encoder Atom",

	CC("uuid"): "UUID Box",
}

// Name returns the human-readable name for a known box type. The second
// return is false for types outside the table.
func Name(cc FourCC) (string, bool) {
	name, ok := boxNames[cc]
	return name, ok
}

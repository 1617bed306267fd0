package index

var (
	bMeta    = []byte("meta")     // slug -> json(PostMeta)
	bAlias   = []byte("alias")    // old path segment -> slug
	bIdxDate = []byte("idx_date") // dateKey -> 1
	bIdxTag  = []byte("idx_tag")  // tag key -> sub-bucket of dateKeys
	bIdxCat  = []byte("idx_cat")  // category key -> sub-bucket of dateKeys
	bBuild   = []byte("build")    // "fingerprint" -> json(Fingerprint)

	kFingerprint = []byte("fingerprint")
)

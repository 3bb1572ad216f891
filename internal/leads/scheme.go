package leads

var (
	bLeads        = []byte("leads")          // id -> lead json
	bLeadsByEmail = []byte("leads_by_email") // email 0x00 id -> {1}
)

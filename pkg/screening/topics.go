package screening

// topicLabels maps OpenSanctions topic codes (the values of an entity's
// "topics" property) to readable labels. The summarizer hands this table
// to the model so raw codes can be interpreted.
var topicLabels = map[string]string{
	"crime":               "Crime",
	"crime.fraud":         "Fraud",
	"crime.cyber":         "Cybercrime",
	"crime.fin":           "Financial crime",
	"crime.env":           "Environmental violations",
	"crime.theft":         "Theft",
	"crime.war":           "War crimes",
	"crime.boss":          "Criminal leadership",
	"crime.terror":        "Terrorism",
	"crime.traffick":      "Trafficking",
	"crime.traffick.drug": "Drug trafficking",
	"crime.traffick.human": "Human trafficking",
	"forced.labor":        "Forced labor",
	"asset.frozen":        "Frozen asset",
	"wanted":              "Wanted",
	"corp.offshore":       "Offshore",
	"corp.shell":          "Shell company",
	"corp.public":         "Publicly listed company",
	"corp.disqual":        "Disqualified",
	"gov":                 "Government",
	"gov.national":        "National government",
	"gov.state":           "State government",
	"gov.muni":            "Municipal government",
	"gov.soe":             "State-owned enterprise",
	"gov.igo":             "Intergovernmental organization",
	"gov.head":            "Head of government or state",
	"gov.admin":           "Civil service",
	"gov.executive":       "Executive branch of government",
	"gov.legislative":     "Legislative branch of government",
	"gov.judicial":        "Judicial branch of government",
	"gov.security":        "Security services",
	"gov.financial":       "Central banking and financial integrity",
	"gov.religion":        "Religious leadership",
	"fin":                 "Financial services",
	"fin.bank":            "Bank",
	"fin.fund":            "Fund",
	"fin.adivsor":         "Financial advisor",
	"mare.detained":       "Maritime detention",
	"mare.shadow":         "Shadow fleet",
	"mare.sts":            "Ship-to-ship transfer",
	"reg.action":          "Regulator action",
	"reg.warn":            "Regulator warning",
	"role.pep":            "Politician",
	"role.pol":            "Non-PEP",
	"role.rca":            "Close associate",
	"role.judge":          "Judge",
	"role.civil":          "Civil servant",
	"role.diplo":          "Diplomat",
	"role.lawyer":         "Lawyer",
	"role.acct":           "Accountant",
	"role.spy":            "Spy",
	"role.oligarch":       "Oligarch",
	"role.journo":         "Journalist",
	"role.act":            "Activist",
	"role.lobby":          "Lobbyist",
	"pol.party":           "Political party",
	"pol.union":           "Union",
	"rel":                 "Religion",
	"mil":                 "Military",
	"sanction":            "Sanctioned entity",
	"sanction.linked":     "Sanction-linked entity",
	"sanction.counter":    "Counter-sanctioned entity",
	"export.control":      "Export controlled",
	"export.risk":         "Trade risk",
	"debarment":           "Debarred entity",
	"poi":                 "Person of interest",
}

// TopicLabels returns a copy of the code-to-label table.
func TopicLabels() map[string]string {
	out := make(map[string]string, len(topicLabels))
	for k, v := range topicLabels {
		out[k] = v
	}
	return out
}

// TopicLabel resolves one topic code, falling back to the raw code.
func TopicLabel(code string) string {
	if label, ok := topicLabels[code]; ok {
		return label
	}
	return code
}

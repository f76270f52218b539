package projects

// Stats is the dashboard summary computed from the loaded list
type Stats struct {
	Total           int
	Pending         int
	Approved        int
	Rejected        int
	ApprovedRevenue float64
}

func Fold(list []Project) Stats {
	var s Stats
	for _, p := range list {
		s.Total++
		switch p.Status {
		case StatusPending:
			s.Pending++
		case StatusApproved:
			s.Approved++
			s.ApprovedRevenue += p.ExpectedRevenue.Float()
		case StatusRejected:
			s.Rejected++
		}
	}
	return s
}

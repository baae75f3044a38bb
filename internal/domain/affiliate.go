package domain

// Affiliate is a remembered transfer counterparty. Its tag is the key of the
// owning account's affiliate collection and does not change after creation.
type Affiliate struct {
	tag            string
	firstName      string
	secondName     string
	iban           string
	activityDomain string
	phone          string
}

type AffiliateParams struct {
	Tag            string
	FirstName      string
	SecondName     string
	IBAN           string
	ActivityDomain string
	Phone          string
}

func NewAffiliate(p AffiliateParams) *Affiliate {
	return &Affiliate{
		tag:            p.Tag,
		firstName:      p.FirstName,
		secondName:     p.SecondName,
		iban:           p.IBAN,
		activityDomain: p.ActivityDomain,
		phone:          p.Phone,
	}
}

func (a *Affiliate) Tag() string {
	if a == nil {
		return ""
	}
	return a.tag
}

func (a *Affiliate) FirstName() string {
	if a == nil {
		return ""
	}
	return a.firstName
}

func (a *Affiliate) SecondName() string {
	if a == nil {
		return ""
	}
	return a.secondName
}

func (a *Affiliate) IBAN() string {
	if a == nil {
		return ""
	}
	return a.iban
}

func (a *Affiliate) ActivityDomain() string {
	if a == nil {
		return ""
	}
	return a.activityDomain
}

func (a *Affiliate) Phone() string {
	if a == nil {
		return ""
	}
	return a.phone
}

func (a *Affiliate) SetFirstName(name string) {
	if a == nil {
		return
	}
	a.firstName = name
}

func (a *Affiliate) SetSecondName(name string) {
	if a == nil {
		return
	}
	a.secondName = name
}

func (a *Affiliate) SetIBAN(iban string) {
	if a == nil {
		return
	}
	a.iban = iban
}

func (a *Affiliate) SetActivityDomain(domain string) {
	if a == nil {
		return
	}
	a.activityDomain = domain
}

func (a *Affiliate) SetPhone(phone string) {
	if a == nil {
		return
	}
	a.phone = phone
}

func (a *Affiliate) Clone() *Affiliate {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

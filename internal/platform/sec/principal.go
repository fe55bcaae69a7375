// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the authenticated identity attached to a single request.
//
// It never carries credential material; handlers read it to decide
// ownership and to stamp authorship on new rows.
type Principal struct {
	ID        int64
	LoginName string
	Role      Role
}

// Authorities returns the granted-authority set, one entry equal to the role.
func (p *Principal) Authorities() []string {
	if p == nil || p.Role == "" {
		return nil
	}
	return []string{p.Role.String()}
}

// HasAuthority reports whether the principal was granted authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, granted := range p.Authorities() {
		if granted == authority {
			return true
		}
	}
	return false
}

package service

// Bundled sample loan agreement, available so the analysis flow can be
// exercised without uploading a document first.
const sampleDocumentName = "Church_loans_Sample.txt"

const sampleDocumentContent = `LOAN AGREEMENT

BY AND BETWEEN
CHURCH LOANS & INVESTMENTS TRUST ("TRUST")
AND
AMARILLO NATIONAL BANK ("BANK")

DATED
DECEMBER 31, 2002

SECTION 1. LOANS
1.1 Bank's Commitment. Bank agrees to make loans to the Trust, at any time or from time to time during the term hereof, in an aggregate principal amount not exceeding at any one time outstanding the sum of $20,000,000.

1.4 Interest. The Notes shall bear interest at a rate equal to 1% per annum less than J.P. Morgan Chase & Co., Inc.'s prime lending rate, adjusted daily.

SECTION 5. COLLATERAL
5.1 Collateral Requirement. The Trust shall deliver and maintain with the Bank, at all times, Qualified Collateral having a Pledge Value equal to at least 110% of the aggregate outstanding principal balance of the Notes.

SECTION 6. AFFIRMATIVE COVENANTS
6.12 Other Indebtedness. The Trust shall not, directly or indirectly, be liable for or assume or guaranty any indebtedness of any person, firm or corporation, other than in connection with the ordinary course of its business of making loans to churches, without the prior written consent of Bank.

SECTION 8. EVENTS OF DEFAULT
8.1 Events of Default. The following shall constitute an Event of Default hereunder: (c) If a final money judgment in excess of $25,000 shall be rendered against the Trust and such judgment shall not be discharged or stayed within sixty (60) days.
`

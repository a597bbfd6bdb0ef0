package generator

// Schema is the fixed description of the graph store handed to the model.
// It names node and edge types and their fields; the generator never
// discovers schema at runtime.
const Schema = `Nodes:
  (:Company {ticker: string, name: string})
  (:Filing {type: string, date: date, description: string, accession_no: string})
Relationships:
  (:Company)-[:FILED {date: date}]->(:Filing)
Conventions:
  ticker values are upper-case symbols (e.g. 'AAPL')
  Filing.type values are SEC form labels (e.g. '10-K', '10-Q', '8-K')
  dates are Cypher date values; literals use date('YYYY-MM-DD')`

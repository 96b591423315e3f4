package profile

// Merge prompt template. Data only, no logic.
//
// Args: target JSON schema, resume JSON, linkedin JSON, github JSON.
// Absent sources are substituted with an explicit placeholder so the model
// never invents data for them.
const mergePrompt = `You are an expert data aggregation service. Your sole task is to merge the three JSON inputs below (resume, LinkedIn, GitHub) into a single, valid JSON object conforming exactly to the JSON Schema provided.

### Core Requirements ###

1. **Strict Schema:** The output must validate against the schema. Year fields are a four-digit integer or the literal string "Present". All URL fields must be absolute URIs.
2. **Deduplicate & Merge:** Entries describing the same real-world entity are ONE entity: same institution and degree (even worded differently), same company with overlapping dates, same project name or identical link, same skill spelled differently. Merge them into a single object.
3. **Enrich:** A merged object carries the union of descriptive content and the most specific date information available from any contributing source. When sources disagree on a scalar field, prefer the resume's value. Keep raw unparseable date strings in the *_raw fields instead of discarding them.
4. **Track Sources:** For every item (education, experience, projects, skills, certifications, positions_of_responsibility) populate its "source" list with exactly the sources that contributed to it, e.g. ["resume", "linkedin"]. An entity present in only one source still appears, with a single-element source list. Never drop an entity for lacking corroboration.
5. **Skills:** Combine skills from all sources, deduplicate case-insensitively, and group them into categories. Pool uncategorized skills into an "Other" category.
6. **Absent Sources:** An input marked "(source not provided)" contributes nothing; never attribute data to it.

Your output must be ONLY the final JSON object, with no conversational text and no markdown fences.

### Target JSON Schema ###
%s

### Data Inputs ###

---RESUME JSON---
%s
---END RESUME---

---LINKEDIN JSON---
%s
---END LINKEDIN---

---GITHUB JSON---
%s
---END GITHUB---`

// absentPlaceholder marks a source that yielded no record.
const absentPlaceholder = "(source not provided)"
